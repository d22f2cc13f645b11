package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookworm/internal/domain"
	applog "bookworm/internal/log"
	"bookworm/internal/services"
)

type CartHandler struct {
	Auth *services.AuthService
	Cart *services.CartService
}

type saveCartRequest struct {
	Cart []domain.CartLine `json:"cart"`
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u, err := h.Auth.Identify(c.UserContext(), tokenFrom(c))
	if err != nil {
		return respond(c, "cart.view", err)
	}
	cart, ok, err := h.Cart.Get(c.UserContext(), u.Email)
	if err != nil {
		return respond(c, "cart.view", err)
	}
	if !ok {
		return c.JSON(fiber.Map{"message": "Cart is empty", "items": []domain.CartLine{}})
	}
	return c.JSON(cart)
}

func (h *CartHandler) Save(c *fiber.Ctx) error {
	u, err := h.Auth.Identify(c.UserContext(), tokenFrom(c))
	if err != nil {
		return respond(c, "cart.save", err)
	}
	var req saveCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, "cart.save", err)
	}
	if req.Cart == nil {
		req.Cart = []domain.CartLine{}
	}
	if err := h.Cart.Save(c.UserContext(), u.Email, req.Cart); err != nil {
		return respond(c, "cart.save", err)
	}
	applog.Info(c, "cart.save", map[string]any{"email": u.Email, "lines": len(req.Cart)})
	return c.JSON(fiber.Map{"ok": true})
}
