package domain

import (
	"errors"
	"testing"

	"go.trai.ch/zerr"
)

func testCompute(args []*string) *string {
	s := ""
	return &s
}

func TestCheckAcyclic_CleanChain(t *testing.T) {
	src := NewSourceNode("a", "A", LocationKey{File: "f", Path: "p", Field: "a"}, SourceValues{}, false)
	b, err := NewDerivedNode("b", "B", []Node{src}, testCompute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := NewDerivedNode("c", "C", []Node{b, nil}, testCompute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := CheckAcyclic([]Node{src, b, c}); err != nil {
		t.Errorf("expected clean chain to validate, got %v", err)
	}
}

func TestCheckAcyclic_DetectsCycle(t *testing.T) {
	b, err := NewDerivedNode("b", "B", nil, testCompute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := NewDerivedNode("c", "C", []Node{b}, testCompute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The public API cannot build this shape; force it.
	ForceDependencies(b, []Node{c})

	err = CheckAcyclic([]Node{b, c})
	if !errors.Is(err, ErrDependencyCycle) {
		t.Fatalf("expected ErrDependencyCycle, got %v", err)
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if cycle, ok := zErr.Metadata()["cycle"].(string); !ok || cycle == "" {
		t.Errorf("expected non-empty cycle metadata, got %v", zErr.Metadata()["cycle"])
	}
}

func TestCheckAcyclic_SelfReference(t *testing.T) {
	d, err := NewDerivedNode("d", "D", nil, testCompute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ForceDependencies(d, []Node{d})

	if err := CheckAcyclic([]Node{d}); !errors.Is(err, ErrDependencyCycle) {
		t.Fatalf("expected ErrDependencyCycle for self reference, got %v", err)
	}
}
