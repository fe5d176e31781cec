// Package registry looks up schema documents by path-like keys. A Registry
// resolves a key against its backing store, parses the stored document, and
// returns the Spec. Registries make no caching guarantee; each Get may
// re-read from storage.
package registry

import (
	"context"

	"github.com/go-tabular/tabular/schema"
)

// Registry is a lookup from a path-like key to a parsed schema Spec.
type Registry interface {
	// Exists reports whether the key resolves to a stored schema document.
	Exists(ctx context.Context, key string) (bool, error)
	// Keys lists the keys of all schema documents in the registry.
	Keys(ctx context.Context) ([]string, error)
	// Get parses and returns the schema stored under key. A key that does
	// not resolve yields a KeyNotFoundError; malformed content yields a
	// SchemaParseError.
	Get(ctx context.Context, key string) (*schema.Spec, error)
}
