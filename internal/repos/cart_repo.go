package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bookworm/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartRow struct {
	Email     string `db:"email"`
	ItemsJSON string `db:"items_json"`
	UpdatedAt string `db:"updated_at"`
}

func (r *CartRepo) Get(ctx context.Context, email string) (domain.Cart, error) {
	var row cartRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT email, items_json, updated_at FROM carts WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}

	c := domain.Cart{Email: row.Email, Items: []domain.CartLine{}}
	if err := json.Unmarshal([]byte(row.ItemsJSON), &c.Items); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart %s: %w", email, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, row.UpdatedAt); err == nil {
		c.UpdatedAt = ts
	}
	return c, nil
}

// Replace writes items as the whole cart for email. Prior contents are discarded, not merged.
func (r *CartRepo) Replace(ctx context.Context, email string, items []domain.CartLine) error {
	if items == nil {
		items = []domain.CartLine{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO carts(email, items_json, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
		  items_json = excluded.items_json,
		  updated_at = excluded.updated_at
	`), email, string(b), now())
	return err
}
