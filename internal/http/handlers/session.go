package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const tokenCookie = "token"

// Session carries the cookie settings for issued tokens.
type Session struct {
	TTL    time.Duration
	Secure bool // set true behind HTTPS
}

// tokenFrom reads the session token from the cookie, falling back to a bearer header.
func tokenFrom(c *fiber.Ctx) string {
	if tok := c.Cookies(tokenCookie); tok != "" {
		return tok
	}
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func (s Session) set(c *fiber.Ctx, tok string) {
	ck := &fiber.Cookie{
		Name:     tokenCookie,
		Value:    tok,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
	}
	if s.TTL > 0 {
		ck.Expires = time.Now().Add(s.TTL)
	}
	c.Cookie(ck)
}

func (s Session) clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// RequestTimeout bounds the work done for one request, store calls included.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
