package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines order management business logic.
type Service interface {
	// PlaceOrder assigns the id and timestamp server-side, appends the
	// order to the log and returns the stored record.
	PlaceOrder(ctx context.Context, o *Order) (*Order, error)

	// ListOrders returns every stored order in insertion order.
	ListOrders(ctx context.Context) ([]Order, error)

	// Report aggregates the whole history by calendar day or month.
	Report(ctx context.Context, granularity Granularity) (*Report, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) PlaceOrder(ctx context.Context, o *Order) (*Order, error) {
	o.ID = uuid.New().String()
	o.Timestamp = s.now().UTC().Format(timestampLayout)
	if err := s.repo.Append(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Report(ctx context.Context, granularity Granularity) (*Report, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	report := Aggregate(orders, granularity)
	return &report, nil
}
