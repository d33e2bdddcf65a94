package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Anderson5247/Blue-acai-app-Mirinzal/internal/storage/jsonfile"
)

type fileRepo struct{ store *jsonfile.Store }

// NewFileRepository returns a Repository backed by a flat JSON file
// (items.json in the original deployment).
func NewFileRepository(store *jsonfile.Store) Repository { return &fileRepo{store: store} }

func (r *fileRepo) Load(_ context.Context) (*Document, error) {
	raw, err := r.store.Load()
	if err != nil {
		if jsonfile.IsNotFound(err) {
			return nil, fmt.Errorf("%s: %w", r.store.Path(), ErrNotFound)
		}
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", r.store.Path(), ErrCorrupt, err)
	}
	return doc, nil
}

func (r *fileRepo) Save(_ context.Context, doc *Document) error {
	return r.store.Save(doc)
}
