package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookworm/internal/domain"
	applog "bookworm/internal/log"
	"bookworm/internal/metrics"
	"bookworm/internal/services"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Session Session
	Metrics *metrics.Metrics
}

type registerRequest struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Cart     []domain.CartLine `json:"cart"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, "auth.register", err)
	}
	u, err := h.Auth.Register(c.UserContext(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Cart:     req.Cart,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			applog.Security(c, "auth.register.duplicate", nil)
		}
		h.Metrics.Auth("register_fail")
		return respond(c, "auth.register", err)
	}
	tok, err := h.Auth.IssueToken(u.Email)
	if err != nil {
		return respond(c, "auth.register", err)
	}
	h.Session.set(c, tok)
	h.Metrics.Auth("register")
	applog.Audit(c, "auth.register.success", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": u.Name, "email": u.Email, "token": tok})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, "auth.login", err)
	}
	u, tok, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
			h.Metrics.Auth("login_fail")
		}
		return respond(c, "auth.login", err)
	}
	h.Session.set(c, tok)
	h.Metrics.Auth("login")
	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"name": u.Name, "email": u.Email, "token": tok})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.Auth.Logout(c.UserContext())
	h.Session.clear(c)
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "logout successfully"})
}

// WhoAmI reports the token's user. A missing token or a user that no longer exists yields
// an empty object; a bad token is a 401.
func (h *AuthHandler) WhoAmI(c *fiber.Ctx) error {
	u, err := h.Auth.Identify(c.UserContext(), tokenFrom(c))
	switch {
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrUnknownUser):
		return c.JSON(fiber.Map{})
	case err != nil:
		return respond(c, "auth.whoami", err)
	}
	return c.JSON(u.Public())
}
