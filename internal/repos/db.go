package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	applog "bookworm/internal/log"
)

// ErrNotFound is returned by repos when the keyed record does not exist.
var ErrNotFound = errors.New("not found")

// OpenDB opens the store handle shared by every repo. driver is "sqlite" or "pgx".
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// One connection: SQLite serializes writers anyway, and ":memory:" is per connection.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users(
  email TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  cart_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS carts(
  email TEXT PRIMARY KEY REFERENCES users(email) ON DELETE CASCADE,
  items_json TEXT NOT NULL,
  updated_at TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS books(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  updated_at TEXT
)`,
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(LOWER(title))`,
		`CREATE INDEX IF NOT EXISTS idx_books_author ON books(LOWER(author))`,
	}
	if db.DriverName() == "sqlite" {
		stmts = append([]string{`PRAGMA foreign_keys = ON`}, stmts...)
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// SeedBooks inserts the demo catalog when the books table is empty.
func SeedBooks(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM books`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.L().Info("db.seed", zap.Int("books", len(demoBooks)))

	inv := NewInventoryRepo(db)
	for _, b := range demoBooks {
		if err := inv.Upsert(ctx, b.id, b.title, b.author, b.price, b.stock); err != nil {
			return err
		}
	}
	return nil
}

var demoBooks = []struct {
	id, title, author string
	price             float64
	stock             int
}{
	{"gatsby-1925", "The Great Gatsby", "F. Scott Fitzgerald", 10.99, 12},
	{"mockingbird-1960", "To Kill a Mockingbird", "Harper Lee", 12.50, 8},
	{"orwell-1984", "Nineteen Eighty-Four", "George Orwell", 9.99, 5},
	{"orwell-farm", "Animal Farm", "George Orwell", 7.99, 1},
	{"austen-pride", "Pride and Prejudice", "Jane Austen", 8.75, 0},
}
