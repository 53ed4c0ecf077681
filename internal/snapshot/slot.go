package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lovenest/storefront/internal/store"
)

// Slot binds one backend key to a store's snapshot port. The payload is the
// JSON array of cart items, the same shape the browser used to cache.
type Slot struct {
	backend Backend
	key     string
}

var _ store.SnapshotPort = (*Slot)(nil)

func NewSlot(backend Backend, key string) *Slot {
	return &Slot{backend: backend, key: key}
}

// Load returns nil, nil when nothing is stored and an error when the stored
// payload is not a cart.
func (s *Slot) Load(ctx context.Context) ([]store.CartItem, error) {
	data, err := s.backend.Read(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var items []store.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return items, nil
}

func (s *Slot) Save(ctx context.Context, items []store.CartItem) error {
	if items == nil {
		items = []store.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	return s.backend.Write(ctx, s.key, data)
}

func (s *Slot) Clear(ctx context.Context) error {
	return s.backend.Remove(ctx, s.key)
}
