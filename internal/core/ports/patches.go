package ports

import (
	"context"
	"iter"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=patches.go -destination=mocks/mock_patches.go -package=mocks

// PatchStore is the durable overlay of user-authored field deltas, keyed by
// the durable string form of a LocationKey. It persists independently of
// registry rebuilds.
type PatchStore interface {
	// Get returns the delta for a durable key, if present.
	Get(key string) (string, bool)

	// Len returns the number of loaded deltas.
	Len() int

	// Snapshot returns a copy of the overlay.
	Snapshot() map[string]string

	// Sync resynchronizes the overlay from the live source nodes: modified
	// nodes are upserted, unmodified ones removed, and keys matching no live
	// node dropped with a warning. Idempotent.
	Sync(nodes iter.Seq[*domain.SourceNode])

	// Load merges the deltas persisted at url into the overlay. A missing
	// file is a no-op; a parse or I/O error is fatal and applies nothing.
	Load(ctx context.Context, url string) error

	// Save writes the whole overlay to url, overwriting it, with keys in
	// lexicographic order.
	Save(ctx context.Context, url string) error
}
