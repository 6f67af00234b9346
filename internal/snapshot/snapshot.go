package snapshot

import (
	"context"
	"errors"
)

// Store is a durable key-value store for serialized cart snapshots.
// Implementations must return ErrNotFound when no snapshot exists for a key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("snapshot not found")

// Key scopes the fixed namespace to one visitor.
func Key(namespace, visitorID string) string {
	if visitorID == "" {
		return namespace
	}
	return namespace + ":" + visitorID
}
