package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "delphine/internal/log"
	"delphine/internal/services"
)

type WebhookHandler struct {
	Webhook *services.WebhookService
}

type webhookPayload struct {
	ExternalID    string `json:"externalId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// Receive handles POST /api/webhooks/pok. The provider retries on any
// non-2xx response, so not-found and parse errors are surfaced as-is.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var p webhookPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if p.ExternalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing externalId"})
	}

	out, err := h.Webhook.Apply(p.ExternalID, p.Status, p.PaymentStatus)
	if err != nil {
		if err == services.ErrOrderNotFound {
			applog.Security(c, "webhook.order.unknown", map[string]any{"external_id": p.ExternalID})
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		applog.Error(c, "webhook.fail", err, map[string]any{"external_id": p.ExternalID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Webhook processing failed"})
	}

	applog.Audit(c, "webhook.apply", map[string]any{
		"order_number":   out.OrderNumber,
		"payment_status": out.PaymentStatus,
		"status":         out.Status,
		"applied":        out.Applied,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Verify answers the provider's GET endpoint check.
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
