package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "delphine/internal/log"
	"delphine/internal/services"
	"delphine/internal/validate"
)

type NewsletterHandler struct {
	News *services.NewsletterService
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid email required"})
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid email required"})
	}

	back, err := h.News.Subscribe(email)
	if err != nil {
		if err == services.ErrAlreadySubscribed {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Already subscribed"})
		}
		applog.Error(c, "newsletter.subscribe.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	msg := "Subscribed!"
	if back {
		msg = "Welcome back!"
	}
	return c.JSON(fiber.Map{"success": true, "message": msg})
}
