// Package domain contains the core model of the live data graph: epochs,
// location keys, source and derived nodes, and named objects.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Epoch identifies one of the four snapshots a field value moves through.
type Epoch string

const (
	// EpochVanilla is the value as shipped in the base game files.
	EpochVanilla Epoch = "vanilla"
	// EpochPatched is the value after extension diffs have been applied.
	EpochPatched Epoch = "patched"
	// EpochCurrent is the value in the working tree, after prior transforms.
	EpochCurrent Epoch = "current"
	// EpochEdited is the value after user edits. It is the only mutable epoch.
	EpochEdited Epoch = "edited"
)

// Epochs returns every epoch in pipeline order.
func Epochs() []Epoch {
	return []Epoch{EpochVanilla, EpochPatched, EpochCurrent, EpochEdited}
}

// SnapshotEpochs returns the immutable epochs fetched once at node
// construction, in pipeline order.
func SnapshotEpochs() []Epoch {
	return []Epoch{EpochVanilla, EpochPatched, EpochCurrent}
}

// ParseEpoch converts user input to an Epoch.
func ParseEpoch(s string) (Epoch, error) {
	switch Epoch(strings.ToLower(strings.TrimSpace(s))) {
	case EpochVanilla:
		return EpochVanilla, nil
	case EpochPatched:
		return EpochPatched, nil
	case EpochCurrent:
		return EpochCurrent, nil
	case EpochEdited:
		return EpochEdited, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownEpoch, ""), "epoch", s)
	}
}
