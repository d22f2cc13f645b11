package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookworm/internal/domain"
	"bookworm/internal/services"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	books, err := h.Inv.List(c.UserContext())
	if err != nil {
		return respond(c, "books.list", err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(books)
}

func (h *InventoryHandler) Detail(c *fiber.Ctx) error {
	b, err := h.Inv.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respond(c, "books.detail", err)
	}
	return c.JSON(b)
}

func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	res, err := h.Inv.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return respond(c, "books.search", err)
	}
	return c.JSON(res)
}
