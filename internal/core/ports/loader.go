// Package ports defines the interfaces between the data graph core and its
// adapters.
package ports

import (
	"context"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks

// FieldSource supplies raw field values from the layered virtual file tree.
type FieldSource interface {
	// FieldValue resolves key.Path within key.File for the given epoch and
	// returns the value of the key.Field attribute on the single matching
	// element. Resolving to anything other than exactly one element is an
	// error (a construction invariant, never recoverable user input). A nil
	// value means the matched element carries no such attribute.
	FieldValue(ctx context.Context, epoch domain.Epoch, key domain.LocationKey) (*string, error)

	// ApplyEdits writes modified attribute values back into the working
	// file tree rooted at destRoot, ahead of further processing.
	ApplyEdits(ctx context.Context, edits []domain.FieldEdit, destRoot string) error
}

// SourceFactory opens a FieldSource over per-epoch ordered layer roots. The
// layer set comes from the catalog, which is only known at build time.
type SourceFactory interface {
	Open(layers map[domain.Epoch][]string) FieldSource
}
