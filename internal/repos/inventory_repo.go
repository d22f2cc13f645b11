package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"bookworm/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const bookCols = `id, title, author, price, stock`

func (r *InventoryRepo) Get(ctx context.Context, id string) (domain.Book, error) {
	var b domain.Book
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`SELECT `+bookCols+` FROM books WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, ErrNotFound
	}
	return b, err
}

func (r *InventoryRepo) List(ctx context.Context) ([]domain.Book, error) {
	out := []domain.Book{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+bookCols+` FROM books ORDER BY title`)
	return out, err
}

// SearchTitle and SearchAuthor match q case-insensitively anywhere in the field.
func (r *InventoryRepo) SearchTitle(ctx context.Context, q string) ([]domain.Book, error) {
	return r.search(ctx, "title", q)
}

func (r *InventoryRepo) SearchAuthor(ctx context.Context, q string) ([]domain.Book, error) {
	return r.search(ctx, "author", q)
}

func (r *InventoryRepo) search(ctx context.Context, col, q string) ([]domain.Book, error) {
	out := []domain.Book{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+bookCols+` FROM books
		WHERE LOWER(`+col+`) LIKE ? ESCAPE '\'
		ORDER BY title
	`), "%"+likeEscaper.Replace(strings.ToLower(q))+"%")
	return out, err
}

// likeEscaper makes LIKE metacharacters in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Decrement subtracts one unit in a single conditional statement.
// It reports false when the row is missing or already at zero.
func (r *InventoryRepo) Decrement(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE books
		SET stock = stock - 1, updated_at = ?
		WHERE id = ? AND stock > 0
	`), now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SetStock overwrites the stock of an existing book.
func (r *InventoryRepo) SetStock(ctx context.Context, id string, stock int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE books SET stock = ?, updated_at = ? WHERE id = ?`), stock, now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert creates the book or replaces its catalog fields and stock.
func (r *InventoryRepo) Upsert(ctx context.Context, id, title, author string, price float64, stock int) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO books(id, title, author, price, stock, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  author = excluded.author,
		  price = excluded.price,
		  stock = excluded.stock,
		  updated_at = excluded.updated_at
	`), id, title, author, price, stock, now())
	return err
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }
