package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookworm/internal/log"
	"bookworm/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

type placeOrderRequest struct {
	Items []string `json:"items"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, "order.place", err)
	}
	results, err := h.Order.Place(c.UserContext(), tokenFrom(c), req.Items)
	if err != nil {
		return respond(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{"items": len(results)})
	return c.JSON(fiber.Map{"results": results})
}
