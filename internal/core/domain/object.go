package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Object is a named aggregate of nodes. Lookups that miss locally fall back
// to referenced objects, searched in insertion order.
type Object struct {
	name  string
	items map[string]Node
	order []string
	refs  []*Object
}

// NewObject creates an empty object. The name must be unique within a
// registry; uniqueness is enforced at registration, not here.
func NewObject(name string) *Object {
	return &Object{
		name:  name,
		items: make(map[string]Node),
	}
}

// Name returns the registry-wide name.
func (o *Object) Name() string { return o.name }

// AddItem stores a node under its own name. A later add with the same name
// silently replaces the earlier one.
func (o *Object) AddItem(n Node) {
	if _, exists := o.items[n.Name()]; !exists {
		o.order = append(o.order, n.Name())
	}
	o.items[n.Name()] = n
}

// AddReference appends a fallback object for name resolution. The guard is
// asymmetric on purpose: it rejects the direct back-reference only, deeper
// cycles are the wiring author's responsibility.
func (o *Object) AddReference(other *Object) error {
	for _, r := range other.refs {
		if r == o {
			return zerr.With(zerr.With(zerr.Wrap(ErrReferenceCycle, ""), "object", o.name), "reference", other.name)
		}
	}
	o.refs = append(o.refs, other)
	return nil
}

// References returns the reference list in insertion order.
func (o *Object) References() []*Object {
	return append([]*Object(nil), o.refs...)
}

// Item resolves a node by name: local map first, then each reference in
// insertion order, recursing. Returns nil when exhausted.
func (o *Object) Item(name string) Node {
	if n, ok := o.items[name]; ok {
		return n
	}
	for _, r := range o.refs {
		if n := r.Item(name); n != nil {
			return n
		}
	}
	return nil
}

// Items returns the local nodes in insertion order. Replaced nodes keep
// their original position.
func (o *Object) Items() []Node {
	out := make([]Node, 0, len(o.order))
	for _, name := range o.order {
		out = append(out, o.items[name])
	}
	return out
}

// AllItems returns the local nodes followed by the recursively flattened
// items of every reference, in order. Duplicates are possible and kept.
func (o *Object) AllItems() []Node {
	out := o.Items()
	for _, r := range o.refs {
		out = append(out, r.AllItems()...)
	}
	return out
}

// SourceNodes iterates the local source nodes in insertion order. Referenced
// objects are excluded; they surface their own source nodes when visited.
func (o *Object) SourceNodes() iter.Seq[*SourceNode] {
	return func(yield func(*SourceNode) bool) {
		for _, name := range o.order {
			if src, ok := o.items[name].(*SourceNode); ok {
				if !yield(src) {
					return
				}
			}
		}
	}
}
