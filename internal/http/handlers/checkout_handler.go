package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "delphine/internal/log"
	"delphine/internal/services"
	"delphine/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// Place handles POST /api/checkout. The body is the client's cart
// snapshot plus shipping details; the response carries either a hosted
// payment redirect URL or a manual-payment acknowledgment.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No items in cart"})
	}
	if _, ok := validate.Email(in.Shipping.Email); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "valid email required"})
	}
	for field, v := range map[string]string{
		"firstName": in.Shipping.FirstName,
		"lastName":  in.Shipping.LastName,
		"address":   in.Shipping.Address,
		"city":      in.Shipping.City,
		"country":   in.Shipping.Country,
	} {
		if _, ok := validate.Name(v); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": field})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": field + " is required"})
		}
	}
	if _, ok := validate.Postal(in.Shipping.PostalCode); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "postalCode"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "valid postal code required"})
	}

	res, err := h.Checkout.PlaceOrder(c.Context(), in)
	if err != nil {
		if err == services.ErrEmptyCart {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No items in cart"})
		}
		applog.Error(c, "checkout.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process checkout"})
	}

	applog.Audit(c, "checkout.place", map[string]any{
		"order_number": res.OrderNumber,
		"manual":       res.Manual,
		"total":        in.Total,
	})

	if res.Manual {
		return c.JSON(fiber.Map{
			"success":     true,
			"orderNumber": res.OrderNumber,
			"orderId":     res.OrderID,
			"message":     "Order created. Payment will be processed manually.",
		})
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"orderNumber": res.OrderNumber,
		"orderId":     res.OrderID,
		"paymentUrl":  res.PaymentURL,
	})
}
