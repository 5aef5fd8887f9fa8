// Package cache is an optional read-through cache for single todos, keyed by
// owner and id. A miss or a cache failure is never an error for the caller:
// the service falls back to storage.
//
// Every eviction bumps a per-key version. Get reports the version it saw and
// Set stores only while that version is still current, so a read that raced
// with a write or delete cannot put the old row back.
package cache

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Version is the eviction count of a key as observed by Get. The zero value
// is unknown and makes Set a no-op.
type Version struct {
	value string
	known bool
}

// NewVersion is a known version with the given stamp, for implementations of
// Cache.
func NewVersion(stamp string) Version {
	return Version{value: stamp, known: true}
}

type Cache interface {
	Get(ctx context.Context, ownerID string, id int64) (*models.Todo, Version, bool)
	Set(ctx context.Context, todo *models.Todo, seen Version)
	Delete(ctx context.Context, ownerID string, id int64)
	Close() error
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, string, int64) (*models.Todo, Version, bool) {
	return nil, Version{}, false
}
func (Nop) Set(context.Context, *models.Todo, Version) {}
func (Nop) Delete(context.Context, string, int64)      {}
func (Nop) Close() error                               { return nil }
