package snapshot

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Backend.Read when no snapshot exists for a key.
var ErrNotFound = errors.New("snapshot not found")

// Backend stores opaque snapshot payloads by key.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that sit on external infrastructure.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks b when it can be checked; in-process backends are always ready.
func Ping(ctx context.Context, b Backend) error {
	if p, ok := b.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
