package domain

import "go.trai.ch/zerr"

// SourceValues carries the three immutable snapshots fetched once when a
// source node is built.
type SourceValues struct {
	Vanilla *string
	Patched *string
	Current *string
}

// SourceNode is a leaf of the graph: one attribute of one element in one
// virtual game file. The vanilla, patched and current snapshots never change
// after construction; only the edited value mutates. The edited value is
// never nil, an empty string means the field was explicitly cleared.
type SourceNode struct {
	name        string
	displayName string
	readOnly    bool
	key         LocationKey

	vanilla *string
	patched *string
	current *string
	edited  string

	deps     []*DerivedNode
	observer Observer
}

// NewSourceNode builds a leaf node. The caller is responsible for having
// resolved each snapshot to exactly one match.
func NewSourceNode(name, displayName string, key LocationKey, values SourceValues, readOnly bool) *SourceNode {
	edited := ""
	if values.Patched != nil {
		edited = *values.Patched
	}
	return &SourceNode{
		name:        name,
		displayName: displayName,
		readOnly:    readOnly,
		key:         key,
		vanilla:     values.Vanilla,
		patched:     values.Patched,
		current:     values.Current,
		edited:      edited,
	}
}

// Name implements Node.
func (n *SourceNode) Name() string { return n.name }

// DisplayName implements Node.
func (n *SourceNode) DisplayName() string { return n.displayName }

// ReadOnly implements Node.
func (n *SourceNode) ReadOnly() bool { return n.readOnly }

// Key returns the durable identity of the underlying field.
func (n *SourceNode) Key() LocationKey { return n.key }

// Value implements Node. Snapshot values are returned as copies so callers
// cannot mutate them in place.
func (n *SourceNode) Value(epoch Epoch) *string {
	switch epoch {
	case EpochVanilla:
		return copyValue(n.vanilla)
	case EpochPatched:
		return copyValue(n.patched)
	case EpochCurrent:
		return copyValue(n.current)
	case EpochEdited:
		v := n.edited
		return &v
	default:
		return nil
	}
}

// SetValue stores a raw value verbatim and ripples invalidation forward.
// Only the edited epoch accepts writes; the other three are snapshots.
func (n *SourceNode) SetValue(epoch Epoch, value string) error {
	if epoch != EpochEdited {
		return zerr.With(zerr.With(zerr.Wrap(ErrEpochImmutable, ""), "node", n.name), "epoch", string(epoch))
	}
	if n.readOnly {
		return zerr.With(zerr.Wrap(ErrNodeReadOnly, ""), "node", n.name)
	}
	n.edited = value
	n.Invalidate(epoch)
	return nil
}

// IsModified reports whether the edited value differs from the patched one.
func (n *SourceNode) IsModified() bool {
	if n.patched == nil {
		return n.edited != ""
	}
	return n.edited != *n.patched
}

// Invalidate implements Node. Source nodes hold no cache; the ripple starts
// here and runs depth-first through every dependent.
func (n *SourceNode) Invalidate(epoch Epoch) {
	for _, d := range n.deps {
		d.Invalidate(epoch)
	}
	if epoch == EpochEdited && n.observer != nil {
		v := n.edited
		n.observer(&v)
	}
}

// Observe attaches the external observer notified on edited-value changes.
func (n *SourceNode) Observe(fn Observer) { n.observer = fn }

func (n *SourceNode) attach(d *DerivedNode) {
	n.deps = append(n.deps, d)
}

func copyValue(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
