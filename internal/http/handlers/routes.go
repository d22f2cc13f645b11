package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookworm/internal/config"
	applog "bookworm/internal/log"
)

// Limits for the login throttle and the body size guard.
const (
	LoginAttempts = 5
	LoginWindow   = 10 * time.Minute
	MaxBodyBytes  = 1 << 20
)

// NewApp builds the fiber app with middlewares and every route mounted. gatherer backs
// /metrics; nil falls back to the default registry.
func NewApp(cfg config.Config, d *Deps, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    MaxBodyBytes,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Env != "test" {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: cfg.CORSOrigin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	if cfg.RequestTimeout > 0 {
		app.Use(RequestTimeout(cfg.RequestTimeout))
	}
	Mount(app, d, gatherer)
	return app
}

// Mount registers the routes on app.
func Mount(app *fiber.App, d *Deps, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Post("/register", d.AuthHandler.Register)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        LoginAttempts,
		Expiration: LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)
	app.Get("/auth", d.AuthHandler.WhoAmI)

	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Save)
	app.Put("/order", d.OrderHandler.Place)

	app.Get("/books", d.InventoryHandler.List)
	app.Get("/books/:id", d.InventoryHandler.Detail)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), d.InventoryHandler.Search)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})
}
