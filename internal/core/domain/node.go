package domain

// Node produces a value for a requested epoch. The set of implementations is
// closed: SourceNode holds externally supplied snapshots, DerivedNode
// memoizes a computation over other nodes.
type Node interface {
	// Name is the lookup name inside an Object.
	Name() string
	// DisplayName is the human-facing label.
	DisplayName() string
	// ReadOnly reports whether edits are rejected.
	ReadOnly() bool
	// Value returns the node's value for the given epoch. A nil value means
	// the field is absent at that epoch.
	Value(epoch Epoch) *string
	// Invalidate drops any cached value for the epoch and ripples depth-first
	// through dependents.
	Invalidate(epoch Epoch)

	// attach registers a derived node that must be invalidated when this
	// node changes. Called during DerivedNode construction only.
	attach(d *DerivedNode)
}

// Observer receives eagerly recomputed edited values. Attaching one is the
// only point where the graph pushes instead of waiting to be pulled.
type Observer func(value *string)

// FieldEdit is one modified field in its externally consumable form, ready
// to be written into the working file tree.
type FieldEdit struct {
	Key   LocationKey
	Value string
}
