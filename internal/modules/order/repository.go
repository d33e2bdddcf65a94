package order

import "context"

// Repository defines data access for the append-only order log. There is no
// edit or delete: orders are immutable once appended.
type Repository interface {
	// Append persists a new order at the end of the log.
	Append(ctx context.Context, o *Order) error

	// ListAll returns every stored order in insertion order. A missing log
	// is an empty list, and a corrupt log is treated as empty with a logged
	// warning; neither is an error.
	ListAll(ctx context.Context) ([]Order, error)
}
