package handlers

import (
	"github.com/jmoiron/sqlx"

	"bookworm/internal/auth"
	"bookworm/internal/config"
	"bookworm/internal/metrics"
	"bookworm/internal/repos"
	"bookworm/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	InventoryHandler *InventoryHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, m *metrics.Metrics) *Deps {
	userRepo := repos.NewUserRepo(db)
	cartRepo := repos.NewCartRepo(db)
	invRepo := repos.NewInventoryRepo(db)

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenTTL)
	authSvc := services.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(cartRepo, userRepo)
	orderSvc := services.NewOrderService(authSvc, invSvc, m)

	sess := Session{TTL: cfg.TokenTTL, Secure: cfg.Env != "dev"}
	return &Deps{
		AuthHandler:      &AuthHandler{Auth: authSvc, Session: sess, Metrics: m},
		CartHandler:      &CartHandler{Auth: authSvc, Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
	}
}
