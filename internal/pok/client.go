// Package pok talks to the POK hosted-payment API: SDK login followed
// by creation of a hosted payment session correlated to our order
// number. All amounts cross the wire as integer minor units (cents).
package pok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	APIURL     string
	KeyID      string
	KeySecret  string
	MerchantID string

	HTTP *http.Client
}

func NewClient(apiURL, keyID, keySecret, merchantID string) *Client {
	return &Client{
		APIURL:     apiURL,
		KeyID:      keyID,
		KeySecret:  keySecret,
		MerchantID: merchantID,
		// The provider is the only outbound dependency; never block a
		// checkout request on it indefinitely.
		HTTP: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether credentials are present. Without them
// checkout degrades to the manual-payment path.
func (c *Client) Configured() bool {
	return c.KeyID != "" && c.KeySecret != "" && c.MerchantID != ""
}

// Cents converts a decimal currency amount into integer minor units,
// rounding half away from zero so 89.995 becomes 9000, not 8999.
func Cents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type ProductLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"` // cents
}

type OrderRequest struct {
	ExternalID  string        `json:"externalId"`
	Amount      int64         `json:"amount"` // cents
	Currency    string        `json:"currency"`
	Products    []ProductLine `json:"products"`
	RedirectURL string        `json:"redirectUrl"`
	CancelURL   string        `json:"cancelUrl"`
	WebhookURL  string        `json:"webhookUrl"`
}

type OrderSession struct {
	ID         string `json:"id"`
	PaymentURL string `json:"paymentUrl"`
}

type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

type orderResponse struct {
	Data OrderSession `json:"data"`
}

// Login authenticates with key id/secret and returns a bearer token.
func (c *Client) Login(ctx context.Context) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"keyId":     c.KeyID,
		"keySecret": c.KeySecret,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/auth/sdk/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("pok auth failed: %s: %s", resp.Status, b)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", err
	}
	if lr.Data.Token == "" {
		return "", fmt.Errorf("pok auth: empty token")
	}
	return lr.Data.Token, nil
}

// CreateOrder opens a hosted payment session for the given order.
func (c *Client) CreateOrder(ctx context.Context, token string, or OrderRequest) (*OrderSession, error) {
	body, err := json.Marshal(or)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/merchants/%s/sdk-orders", c.APIURL, c.MerchantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pok create order failed: %s: %s", resp.Status, b)
	}

	var orr orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orr); err != nil {
		return nil, err
	}
	return &orr.Data, nil
}
