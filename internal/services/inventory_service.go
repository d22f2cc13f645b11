package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"bookworm/internal/domain"
	"bookworm/internal/repos"
	"bookworm/internal/validate"
)

var tracer = otel.Tracer("bookworm/internal/services")

type Stock interface {
	Get(ctx context.Context, id string) (domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	SearchTitle(ctx context.Context, q string) ([]domain.Book, error)
	SearchAuthor(ctx context.Context, q string) ([]domain.Book, error)
	Decrement(ctx context.Context, id string) (bool, error)
	SetStock(ctx context.Context, id string, stock int) error
}

// InventoryService is the ledger of per-book stock counters.
type InventoryService struct {
	Inv Stock
}

func NewInventoryService(inv Stock) *InventoryService {
	return &InventoryService{Inv: inv}
}

// Decrement takes one unit of id if any is left. Stock never goes below zero: the repo
// applies the check and the subtraction as one statement.
func (s *InventoryService) Decrement(ctx context.Context, id string) (domain.Outcome, error) {
	ctx, span := tracer.Start(ctx, "inventory.decrement")
	defer span.End()
	span.SetAttributes(attribute.String("item.id", id))

	ok, err := s.Inv.Decrement(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", unavailable("decrement", err)
	}
	if ok {
		span.SetAttributes(attribute.String("item.outcome", string(domain.Decremented)))
		return domain.Decremented, nil
	}

	// The guarded update refused; find out why.
	out := domain.OutOfStock
	if _, err := s.Inv.Get(ctx, id); err != nil {
		if !errors.Is(err, repos.ErrNotFound) {
			span.SetStatus(codes.Error, err.Error())
			return "", unavailable("decrement", err)
		}
		out = domain.ItemNotFound
	}
	span.SetAttributes(attribute.String("item.outcome", string(out)))
	return out, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (domain.Book, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Book{}, invalid("id", "malformed item id")
	}
	b, err := s.Inv.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Book{}, ErrItemNotFound
	}
	if err != nil {
		return domain.Book{}, unavailable("get item", err)
	}
	return b, nil
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.Inv.List(ctx)
	if err != nil {
		return nil, unavailable("list items", err)
	}
	return books, nil
}

type SearchResult struct {
	NameMatches   []domain.Book `json:"nameMatches"`
	AuthorMatches []domain.Book `json:"authorMatches"`
}

// Search matches q against titles and authors separately.
func (s *InventoryService) Search(ctx context.Context, q string) (SearchResult, error) {
	q, ok := validate.Q(q)
	if !ok {
		return SearchResult{}, invalid("query", "1-50 letters, digits or punctuation")
	}
	byTitle, err := s.Inv.SearchTitle(ctx, q)
	if err != nil {
		return SearchResult{}, unavailable("search", err)
	}
	byAuthor, err := s.Inv.SearchAuthor(ctx, q)
	if err != nil {
		return SearchResult{}, unavailable("search", err)
	}
	if byTitle == nil {
		byTitle = []domain.Book{}
	}
	if byAuthor == nil {
		byAuthor = []domain.Book{}
	}
	return SearchResult{NameMatches: byTitle, AuthorMatches: byAuthor}, nil
}

// Restock sets the counter of an existing book.
func (s *InventoryService) Restock(ctx context.Context, id string, stock int) error {
	id, ok := validate.ID(id)
	if !ok {
		return invalid("itemId", "malformed id")
	}
	if stock < 0 {
		return invalid("stock", "must not be negative")
	}
	err := s.Inv.SetStock(ctx, id, stock)
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return ErrItemNotFound
	case err != nil:
		return unavailable("restock", err)
	}
	return nil
}
