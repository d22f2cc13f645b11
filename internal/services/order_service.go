package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"bookworm/internal/domain"
	"bookworm/internal/metrics"
	"bookworm/internal/validate"
)

type Ledger interface {
	Decrement(ctx context.Context, id string) (domain.Outcome, error)
}

type Identifier interface {
	Identify(ctx context.Context, token string) (*domain.User, error)
}

type OrderService struct {
	Auth    Identifier
	Ledger  Ledger
	Metrics *metrics.Metrics
	// Parallelism bounds concurrent decrements per order; 0 means 8.
	Parallelism int
}

func NewOrderService(auth Identifier, ledger Ledger, m *metrics.Metrics) *OrderService {
	return &OrderService{Auth: auth, Ledger: ledger, Metrics: m}
}

// Place takes one unit of every listed item for the token's user.
//
// Items are independent: an item that is out of stock or unknown is reported in its slot
// and does not undo the others. Results are in request order. Validation and auth failures
// return before any stock is touched. A store failure aborts the call; decrements that
// already happened stay applied.
func (s *OrderService) Place(ctx context.Context, token string, itemIDs []string) (results []domain.ItemResult, err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "orders.place", trace.WithAttributes(attribute.Int("order.items", len(itemIDs))))
	defer func() {
		switch {
		case err == nil:
			s.Metrics.Order("ok", time.Since(start))
		case errors.Is(err, ErrStoreUnavailable):
			span.SetStatus(codes.Error, err.Error())
			s.Metrics.Order("error", time.Since(start))
		default:
			s.Metrics.Order("rejected", time.Since(start))
		}
		span.End()
	}()

	ids, err := checkItemIDs(itemIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.Auth.Identify(ctx, token); err != nil {
		return nil, err
	}

	results = make([]domain.ItemResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism())
	for i, id := range ids {
		g.Go(func() error {
			out, err := s.Ledger.Decrement(gctx, id)
			if err != nil {
				return err
			}
			results[i] = domain.ItemResult{ItemID: id, Outcome: out}
			s.Metrics.ItemOutcome(string(out))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *OrderService) parallelism() int {
	if s.Parallelism > 0 {
		return s.Parallelism
	}
	return 8
}

func checkItemIDs(itemIDs []string) ([]string, error) {
	if len(itemIDs) == 0 {
		return nil, invalid("items", "at least one item id is required")
	}
	if len(itemIDs) > validate.MaxOrderSize {
		return nil, invalid("items", fmt.Sprintf("at most %d item ids per order", validate.MaxOrderSize))
	}
	ids := make([]string, len(itemIDs))
	for i, raw := range itemIDs {
		id, ok := validate.ID(raw)
		if !ok {
			return nil, invalid("items", fmt.Sprintf("item %d: malformed item id", i))
		}
		ids[i] = id
	}
	return ids, nil
}
