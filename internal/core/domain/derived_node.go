package domain

import "go.trai.ch/zerr"

// ComputeFunc derives a value from one argument per declared dependency, in
// declaration order. A nil dependency yields a nil argument; the function
// must tolerate nil arguments (conventionally by returning an empty string).
// It must be pure: same arguments, same result.
type ComputeFunc func(args []*string) *string

// DerivedNode is a computed node, memoized independently per epoch. Its
// dependency list is fixed at construction; a cache entry, when present,
// always equals the compute function applied to the current dependency
// values for that epoch.
type DerivedNode struct {
	name        string
	displayName string
	readOnly    bool

	depList []Node // entries may be nil
	compute ComputeFunc
	cache   map[Epoch]*string

	deps     []*DerivedNode
	observer Observer
}

// DerivedOption configures optional derived node behavior.
type DerivedOption func(*DerivedNode)

// Writable marks the node as not read-only. Derived nodes default to
// read-only since edits flow through their source dependencies.
func Writable() DerivedOption {
	return func(d *DerivedNode) { d.readOnly = false }
}

// NewDerivedNode builds a computed node over the given dependencies and
// registers it as a dependent of each non-nil one. Dependencies must already
// exist, which keeps the dependency graph acyclic by construction;
// CheckAcyclic guards against shape violations regardless.
func NewDerivedNode(name, displayName string, deps []Node, compute ComputeFunc, opts ...DerivedOption) (*DerivedNode, error) {
	if compute == nil {
		return nil, zerr.With(zerr.Wrap(ErrNilCompute, ""), "node", name)
	}
	d := &DerivedNode{
		name:        name,
		displayName: displayName,
		readOnly:    true,
		depList:     append([]Node(nil), deps...),
		compute:     compute,
		cache:       make(map[Epoch]*string),
	}
	for _, opt := range opts {
		opt(d)
	}
	for _, dep := range d.depList {
		if dep != nil {
			dep.attach(d)
		}
	}
	return d, nil
}

// Name implements Node.
func (d *DerivedNode) Name() string { return d.name }

// DisplayName implements Node.
func (d *DerivedNode) DisplayName() string { return d.displayName }

// ReadOnly implements Node.
func (d *DerivedNode) ReadOnly() bool { return d.readOnly }

// Dependencies returns the declared dependency list. Entries may be nil.
func (d *DerivedNode) Dependencies() []Node {
	return append([]Node(nil), d.depList...)
}

// Value implements Node. Between two invalidations of a given (node, epoch)
// pair the compute function runs at most once, no matter how often Value is
// called. The result is a copy so callers cannot mutate the memo in place.
func (d *DerivedNode) Value(epoch Epoch) *string {
	if v, ok := d.cache[epoch]; ok {
		return copyValue(v)
	}
	v := d.recompute(epoch)
	d.cache[epoch] = v
	return copyValue(v)
}

func (d *DerivedNode) recompute(epoch Epoch) *string {
	args := make([]*string, len(d.depList))
	for i, dep := range d.depList {
		if dep != nil {
			args[i] = dep.Value(epoch)
		}
	}
	return d.compute(args)
}

// Invalidate implements Node: drop the epoch's cache entry, then ripple
// depth-first through every dependent, unconditionally. For the edited epoch
// with an observer attached, the new value is eagerly recomputed and pushed.
func (d *DerivedNode) Invalidate(epoch Epoch) {
	delete(d.cache, epoch)
	for _, dep := range d.deps {
		dep.Invalidate(epoch)
	}
	if epoch == EpochEdited && d.observer != nil {
		d.observer(d.Value(epoch))
	}
}

// Observe attaches the external observer notified on edited-value changes.
func (d *DerivedNode) Observe(fn Observer) { d.observer = fn }

func (d *DerivedNode) attach(dep *DerivedNode) {
	d.deps = append(d.deps, dep)
}
