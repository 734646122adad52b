// Package app implements the application layer for modkit.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.trai.ch/zerr"

	"github.com/modkit-dev/modkit/internal/core/domain"
	"github.com/modkit-dev/modkit/internal/core/ports"
	"github.com/modkit-dev/modkit/internal/engine/registry"
	"github.com/modkit-dev/modkit/internal/engine/worker"
)

// ModifiedCategory is the built-in category listing objects with edits.
const ModifiedCategory = "modified"

// Records below this count build on a single goroutine; the fan-out is not
// worth it for small catalogs.
const shardThreshold = 16

// App coordinates the catalog, the layered sources, the object registry and
// the background queue behind a small operation surface for the CLI.
type App struct {
	catalogs ports.CatalogLoader
	sources  ports.SourceFactory
	registry *registry.Registry
	queue    *worker.Queue
	log      ports.Logger

	mu      sync.RWMutex
	catalog *domain.Catalog
	source  ports.FieldSource
}

// New creates an App.
func New(
	catalogs ports.CatalogLoader,
	sources ports.SourceFactory,
	reg *registry.Registry,
	queue *worker.Queue,
	log ports.Logger,
) *App {
	return &App{
		catalogs: catalogs,
		sources:  sources,
		registry: reg,
		queue:    queue,
		log:      log,
	}
}

// ErrNotBuilt is returned by operations that need a built registry.
var ErrNotBuilt = zerr.New("registry not built, run build first")

// Build loads the catalog at catalogURL and rebuilds the whole registry from
// it: persisted deltas first, then every record table, then references and
// the built-in categories. It runs on the background queue, so it never
// overlaps another mutating operation.
func (a *App) Build(ctx context.Context, catalogURL string) error {
	return a.queue.Run(ctx, "build registry", func(ctx context.Context, span ports.Span) error {
		return a.build(ctx, span, catalogURL)
	})
}

func (a *App) build(ctx context.Context, span ports.Span, catalogURL string) error {
	cat, err := a.catalogs.Load(ctx, catalogURL)
	if err != nil {
		return err
	}
	source := a.sources.Open(cat.Layers)

	if err := a.registry.Patches().Load(ctx, cat.PatchURL); err != nil {
		return err
	}

	a.registry.Reset()
	_, _ = fmt.Fprintf(span, "building %d records\n", len(cat.Records))

	workers := 1
	if len(cat.Records) >= shardThreshold {
		workers = runtime.NumCPU()
	}
	objects, err := worker.Sharded(ctx, cat.Records, workers,
		func(ctx context.Context, shard []domain.RecordSpec) ([]*domain.Object, error) {
			built := make([]*domain.Object, 0, len(shard))
			for _, rec := range shard {
				obj, err := a.buildObject(ctx, source, rec)
				if err != nil {
					return nil, err
				}
				built = append(built, obj)
			}
			return built, nil
		})
	if err != nil {
		return err
	}

	// References wire after every object exists, so forward references in
	// the catalog resolve. AddObject applies the persisted deltas.
	byName := make(map[string]*domain.Object, len(objects))
	for _, obj := range objects {
		byName[obj.Name()] = obj
	}
	for _, obj := range objects {
		for _, ref := range cat.Record(obj.Name()).References {
			if err := obj.AddReference(byName[ref]); err != nil {
				return zerr.With(err, "object", obj.Name())
			}
		}
	}
	for _, obj := range objects {
		if err := a.registry.AddObject(obj); err != nil {
			return err
		}
	}

	a.registry.RegisterCategory(ModifiedCategory, a.buildModifiedCategory)

	a.mu.Lock()
	a.catalog = cat
	a.source = source
	a.mu.Unlock()

	a.log.Info("registry built", "records", a.registry.Len(), "catalog", catalogURL)
	return nil
}

// buildObject reads every declared field of one record across the snapshot
// epochs. A missing virtual file for an epoch reads as absent, not fatal;
// catalogs routinely define fewer layers than epochs.
func (a *App) buildObject(ctx context.Context, source ports.FieldSource, rec domain.RecordSpec) (*domain.Object, error) {
	obj := domain.NewObject(rec.Name)
	for _, field := range rec.Fields {
		var values domain.SourceValues
		for _, epoch := range domain.SnapshotEpochs() {
			value, err := source.FieldValue(ctx, epoch, field.Key)
			if err != nil {
				if errors.Is(err, domain.ErrFileNotFound) {
					continue
				}
				return nil, zerr.With(err, "object", rec.Name)
			}
			switch epoch {
			case domain.EpochVanilla:
				values.Vanilla = value
			case domain.EpochPatched:
				values.Patched = value
			case domain.EpochCurrent:
				values.Current = value
			}
		}
		obj.AddItem(domain.NewSourceNode(field.Name, field.Display, field.Key, values, field.ReadOnly))
	}
	return obj, nil
}

func (a *App) buildModifiedCategory() (any, error) {
	var names []string
	for obj := range a.registry.Objects() {
		for node := range obj.SourceNodes() {
			if node.IsModified() {
				names = append(names, obj.Name())
				break
			}
		}
	}
	return names, nil
}

// Get returns an item's value at the given epoch. The lookup follows the
// object's references, so inherited fields resolve too.
func (a *App) Get(objectName, itemName string, epoch domain.Epoch) (*string, error) {
	obj := a.registry.Object(objectName)
	if obj == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrObjectNotFound, ""), "object", objectName)
	}
	node := obj.Item(itemName)
	if node == nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrItemNotFound, ""), "object", objectName), "item", itemName)
	}
	return node.Value(epoch), nil
}

// Set writes an edited value into an item. It runs on the background queue.
func (a *App) Set(ctx context.Context, objectName, itemName, value string) error {
	return a.queue.Run(ctx, "set "+objectName+"."+itemName, func(ctx context.Context, _ ports.Span) error {
		obj := a.registry.Object(objectName)
		if obj == nil {
			return zerr.With(zerr.Wrap(domain.ErrObjectNotFound, ""), "object", objectName)
		}
		node := obj.Item(itemName)
		if node == nil {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrItemNotFound, ""), "object", objectName), "item", itemName)
		}
		writable, ok := node.(interface {
			SetValue(epoch domain.Epoch, value string) error
		})
		if !ok {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrNotEditable, ""), "object", objectName), "item", itemName)
		}
		if err := writable.SetValue(domain.EpochEdited, value); err != nil {
			return zerr.With(zerr.With(err, "object", objectName), "item", itemName)
		}
		a.log.Debug("item edited", "object", objectName, "item", itemName)
		return nil
	})
}

// AddDerived installs a computed item on an existing object.
func (a *App) AddDerived(
	objectName, name, displayName string,
	depNames []string,
	compute domain.ComputeFunc,
	opts ...domain.DerivedOption,
) (*domain.DerivedNode, error) {
	return a.registry.AddDerived(objectName, name, displayName, depNames, compute, opts...)
}

// Save resynchronizes and persists the edited-attributes overlay. It runs on
// the background queue.
func (a *App) Save(ctx context.Context) error {
	a.mu.RLock()
	cat := a.catalog
	a.mu.RUnlock()
	if cat == nil {
		return ErrNotBuilt
	}
	return a.queue.Run(ctx, "save edits", func(ctx context.Context, _ ports.Span) error {
		return a.registry.Save(ctx, cat.PatchURL)
	})
}

// Export writes every modified field back into copies of the current-epoch
// files under destRoot. It runs on the background queue.
func (a *App) Export(ctx context.Context, destRoot string) error {
	a.mu.RLock()
	source := a.source
	a.mu.RUnlock()
	if source == nil {
		return ErrNotBuilt
	}
	return a.queue.Run(ctx, "export edits", func(ctx context.Context, span ports.Span) error {
		edits := a.registry.Edits()
		_, _ = fmt.Fprintf(span, "exporting %d edits\n", len(edits))
		return source.ApplyEdits(ctx, edits, destRoot)
	})
}

// List returns the names of every registered object, in insertion order.
func (a *App) List() []string {
	var names []string
	for obj := range a.registry.Objects() {
		names = append(names, obj.Name())
	}
	return names
}

// Items returns the names of an object's local and inherited items.
func (a *App) Items(objectName string) ([]string, error) {
	obj := a.registry.Object(objectName)
	if obj == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrObjectNotFound, ""), "object", objectName)
	}
	var names []string
	seen := make(map[string]bool)
	for _, node := range obj.AllItems() {
		if seen[node.Name()] {
			continue
		}
		seen[node.Name()] = true
		names = append(names, node.Name())
	}
	return names, nil
}

// Category returns a named category, building it on first access.
func (a *App) Category(name string) (any, error) {
	return a.registry.Category(name)
}

// Registry exposes the underlying registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close drains the background queue.
func (a *App) Close() {
	a.queue.Close()
}
