// Package registry implements the object registry: the single authority for
// live objects, their nodes, and lazily built categories.
package registry

import (
	"context"
	"iter"
	"sync"

	"go.trai.ch/zerr"

	"github.com/modkit-dev/modkit/internal/core/domain"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// CategoryBuilder produces a category's value on first access.
type CategoryBuilder func() (any, error)

// Registry holds every live object by name, applies the persisted field
// deltas to freshly added objects, and serves categories built on demand.
type Registry struct {
	patches ports.PatchStore
	log     ports.Logger

	mu         sync.RWMutex
	objects    map[string]*domain.Object
	order      []string
	builders   map[string]CategoryBuilder
	categories map[string]any
}

// New creates an empty Registry around the given patch overlay.
func New(patches ports.PatchStore, log ports.Logger) *Registry {
	return &Registry{
		patches:    patches,
		log:        log,
		objects:    make(map[string]*domain.Object),
		builders:   make(map[string]CategoryBuilder),
		categories: make(map[string]any),
	}
}

// AddObject registers an object. A duplicate name is fatal, as is a
// dependency cycle among the object's local nodes. Persisted deltas matching
// the object's source fields are applied before the object becomes visible.
func (r *Registry) AddObject(obj *domain.Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.objects[obj.Name()]; exists {
		return zerr.With(zerr.Wrap(domain.ErrObjectAlreadyExists, ""), "object", obj.Name())
	}
	if err := domain.CheckAcyclic(obj.Items()); err != nil {
		return zerr.With(err, "object", obj.Name())
	}

	for node := range obj.SourceNodes() {
		key := node.Key().String()
		value, ok := r.patches.Get(key)
		if !ok {
			continue
		}
		if node.ReadOnly() {
			r.log.Warn("persisted delta targets a read-only field, skipping",
				"object", obj.Name(), "key", key)
			continue
		}
		if err := node.SetValue(domain.EpochEdited, value); err != nil {
			return zerr.With(zerr.With(err, "object", obj.Name()), "key", key)
		}
	}

	r.objects[obj.Name()] = obj
	r.order = append(r.order, obj.Name())
	return nil
}

// AddDerived creates a derived node on an existing object. Dependency names
// resolve through the object's shadow lookup, so references are visible.
func (r *Registry) AddDerived(
	objectName, name, displayName string,
	depNames []string,
	compute domain.ComputeFunc,
	opts ...domain.DerivedOption,
) (*domain.DerivedNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[objectName]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrObjectNotFound, ""), "object", objectName)
	}

	deps := make([]domain.Node, len(depNames))
	for i, depName := range depNames {
		deps[i] = obj.Item(depName)
	}

	node, err := domain.NewDerivedNode(name, displayName, deps, compute, opts...)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "object", objectName), "item", name)
	}
	obj.AddItem(node)
	if err := domain.CheckAcyclic(obj.Items()); err != nil {
		return nil, zerr.With(err, "object", objectName)
	}
	return node, nil
}

// Object returns the named object, nil when absent.
func (r *Registry) Object(name string) *domain.Object {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objects[name]
}

// Objects yields every object in insertion order, over a snapshot taken
// under the lock.
func (r *Registry) Objects() iter.Seq[*domain.Object] {
	r.mu.RLock()
	snapshot := make([]*domain.Object, 0, len(r.order))
	for _, name := range r.order {
		snapshot = append(snapshot, r.objects[name])
	}
	r.mu.RUnlock()

	return func(yield func(*domain.Object) bool) {
		for _, obj := range snapshot {
			if !yield(obj) {
				return
			}
		}
	}
}

// SourceNodes yields every object's local source nodes in insertion order.
func (r *Registry) SourceNodes() iter.Seq[*domain.SourceNode] {
	objects := r.Objects()
	return func(yield func(*domain.SourceNode) bool) {
		for obj := range objects {
			for node := range obj.SourceNodes() {
				if !yield(node) {
					return
				}
			}
		}
	}
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// RegisterCategory installs a named lazy category. The builder runs at most
// once, on first access. Re-registering replaces the builder and discards
// any built value.
func (r *Registry) RegisterCategory(name string, build CategoryBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = build
	delete(r.categories, name)
}

// Category returns the named category, building it on first access. An
// unknown name yields nil, nil. The builder runs outside the registry lock,
// so it may itself walk objects.
func (r *Registry) Category(name string) (any, error) {
	r.mu.RLock()
	if value, ok := r.categories[name]; ok {
		r.mu.RUnlock()
		return value, nil
	}
	build, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	value, err := build()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "category build failed"), "category", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.categories[name]; ok {
		return cached, nil
	}
	r.categories[name] = value
	return value, nil
}

// Edits returns the modified fields of every object, in insertion order.
func (r *Registry) Edits() []domain.FieldEdit {
	var edits []domain.FieldEdit
	for node := range r.SourceNodes() {
		if !node.IsModified() {
			continue
		}
		value := node.Value(domain.EpochEdited)
		if value == nil {
			continue
		}
		edits = append(edits, domain.FieldEdit{Key: node.Key(), Value: *value})
	}
	return edits
}

// Reset drops every object and built category value. Registered builders
// survive, so categories registered once at module load rebuild lazily after
// the next access. The patch overlay survives too, so a rebuild re-applies
// the user's edits.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects = make(map[string]*domain.Object)
	r.order = nil
	r.categories = make(map[string]any)
}

// Save resynchronizes the patch overlay from the live nodes and persists it.
func (r *Registry) Save(ctx context.Context, url string) error {
	r.patches.Sync(r.SourceNodes())
	return r.patches.Save(ctx, url)
}

// Patches exposes the underlying overlay.
func (r *Registry) Patches() ports.PatchStore {
	return r.patches
}
