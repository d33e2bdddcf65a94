package catalog

import (
	"context"
	"errors"
)

// Catalog persistence errors. Unlike the order log, the catalog has no
// sensible empty default, so both conditions are fatal for reads.
var (
	// ErrNotFound is returned when the catalog document does not exist.
	ErrNotFound = errors.New("catalog document not found")
	// ErrCorrupt is returned when the stored document is not valid JSON.
	ErrCorrupt = errors.New("catalog document is corrupt")
)

// Repository defines whole-document storage for the catalog. Partial updates
// never persist independently: the document is loaded, mutated and saved as
// a unit.
type Repository interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}
