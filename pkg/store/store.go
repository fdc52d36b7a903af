// Package store persists named rule universes. Two backends are provided:
// an in-memory store for tests and single-process use, and a MongoDB store
// for service deployments.
package store

import (
	"context"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
)

// Store is the persistence interface for named universes. Implementations
// must be safe for concurrent use. Universe names are validated before
// storage; lookups by unknown name return [errors.ErrCodeUniverseNotFound].
type Store interface {
	// Put stores a universe under its name, replacing any previous version.
	Put(ctx context.Context, u *rule.Universe) error

	// Get returns the universe stored under name.
	Get(ctx context.Context, name string) (*rule.Universe, error)

	// List returns the stored universe names in ascending lexicographic
	// order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the universe stored under name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
