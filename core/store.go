package core

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by a KeyValueStore when a write would grow
// the store past its configured capacity. The previous value is kept.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

type (
	// KeyValueStore is string-keyed, string-valued persistence. Every gallery
	// collection and the profile photo live under a single key each.
	KeyValueStore interface {
		// GetItem returns the value stored under key. ok is false when the key
		// has never been written or was removed.
		GetItem(ctx context.Context, key string) (value string, ok bool, err error)

		// SetItem stores value under key, replacing any previous value.
		SetItem(ctx context.Context, key, value string) error

		// RemoveItem deletes key. Removing an absent key is not an error.
		RemoveItem(ctx context.Context, key string) error
	}
)
