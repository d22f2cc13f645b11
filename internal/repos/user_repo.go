package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"bookworm/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Insert stores u unless the email is taken. created is false when a row already existed.
func (r *UserRepo) Insert(ctx context.Context, u *domain.User) (created bool, err error) {
	cart := u.CartJSON
	if cart == "" {
		cart = "[]"
	}
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO users(email, name, password_hash, cart_json, created_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING
	`), u.Email, u.Name, u.Hash, cart, now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT email, name, password_hash, cart_json FROM users WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
