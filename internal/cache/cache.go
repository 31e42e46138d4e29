// Package cache holds the reservation service's response cache. Entries are
// raw response bodies keyed by request target and expire after a fixed
// validity duration.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
	// Reset drops every entry owned by this cache.
	Reset(ctx context.Context) error
}
