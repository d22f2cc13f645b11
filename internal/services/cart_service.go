package services

import (
	"context"
	"encoding/json"
	"errors"

	"bookworm/internal/domain"
	"bookworm/internal/repos"
)

type CartStore interface {
	Get(ctx context.Context, email string) (domain.Cart, error)
	Replace(ctx context.Context, email string, items []domain.CartLine) error
}

type CartService struct {
	Carts CartStore
	Users UserStore
}

func NewCartService(carts CartStore, users UserStore) *CartService {
	return &CartService{Carts: carts, Users: users}
}

// Get returns the stored cart for email. ok is false when the user has no cart: neither a
// saved one nor a non-empty snapshot given at registration.
func (s *CartService) Get(ctx context.Context, email string) (cart domain.Cart, ok bool, err error) {
	c, err := s.Carts.Get(ctx, email)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, repos.ErrNotFound) {
		return domain.Cart{}, false, unavailable("get cart", err)
	}

	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Cart{}, false, ErrUnknownUser
	}
	if err != nil {
		return domain.Cart{}, false, unavailable("get cart", err)
	}
	var initial []domain.CartLine
	if u.CartJSON != "" {
		if err := json.Unmarshal([]byte(u.CartJSON), &initial); err != nil {
			return domain.Cart{}, false, err
		}
	}
	if len(initial) == 0 {
		return domain.Cart{Email: email, Items: []domain.CartLine{}}, false, nil
	}
	return domain.Cart{Email: email, Items: initial}, true, nil
}

// Save replaces the user's cart with items. Last write wins; nothing is merged.
func (s *CartService) Save(ctx context.Context, email string, items []domain.CartLine) error {
	if err := checkCartLines(items); err != nil {
		return err
	}
	if _, err := s.Users.ByEmail(ctx, email); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return ErrUnknownUser
		}
		return unavailable("save cart", err)
	}
	if err := s.Carts.Replace(ctx, email, items); err != nil {
		return unavailable("save cart", err)
	}
	return nil
}
