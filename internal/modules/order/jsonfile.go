package order

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Anderson5247/Blue-acai-app-Mirinzal/internal/storage/jsonfile"
)

type fileRepo struct {
	store  *jsonfile.Store
	logger *slog.Logger
}

// NewFileRepository returns a Repository backed by a flat JSON array file
// (orders.json in the original deployment).
func NewFileRepository(store *jsonfile.Store, logger *slog.Logger) Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &fileRepo{store: store, logger: logger}
}

func (r *fileRepo) Append(_ context.Context, o *Order) error {
	return r.store.Update(func(raw []byte) (any, error) {
		return append(r.decode(raw), *o), nil
	})
}

func (r *fileRepo) ListAll(_ context.Context) ([]Order, error) {
	raw, err := r.store.Load()
	if err != nil {
		if jsonfile.IsNotFound(err) {
			return []Order{}, nil
		}
		return nil, err
	}
	return r.decode(raw), nil
}

// decode tolerates everything the original server tolerated: a missing or
// empty file, corrupt JSON and a non-array document all come back as an
// empty log so the history keeps working.
func (r *fileRepo) decode(raw []byte) []Order {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []Order{}
	}
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		r.logger.Warn("order log is not a valid order array, treating as empty",
			slog.String("path", r.store.Path()), slog.String("error", err.Error()))
		return []Order{}
	}
	if orders == nil {
		return []Order{}
	}
	return orders
}
