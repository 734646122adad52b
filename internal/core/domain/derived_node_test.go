package domain_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

// doubler computes arg0 * 2, tolerating nil and non-numeric input.
func doubler(computeCount *int) domain.ComputeFunc {
	return func(args []*string) *string {
		*computeCount++
		if len(args) == 0 || args[0] == nil {
			return strptr("")
		}
		n, err := strconv.Atoi(*args[0])
		if err != nil {
			return strptr("")
		}
		return strptr(strconv.Itoa(n * 2))
	}
}

func newDamage(t *testing.T, value string) *domain.SourceNode {
	t.Helper()
	return domain.NewSourceNode("damage", "Damage", testKey("value"), domain.SourceValues{
		Vanilla: strptr(value),
		Patched: strptr(value),
		Current: strptr(value),
	}, false)
}

func TestDerivedNode_NilCompute(t *testing.T) {
	_, err := domain.NewDerivedNode("dps", "DPS", nil, nil)
	if !errors.Is(err, domain.ErrNilCompute) {
		t.Fatalf("expected ErrNilCompute, got %v", err)
	}
}

func TestDerivedNode_Memoization(t *testing.T) {
	damage := newDamage(t, "10")

	count := 0
	dps, err := domain.NewDerivedNode("dps", "DPS", []domain.Node{damage}, doubler(&count))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := dps.Value(domain.EpochEdited); got == nil || *got != "20" {
		t.Fatalf("expected 20, got %v", got)
	}
	if count != 1 {
		t.Fatalf("expected one compute, got %d", count)
	}

	if got := dps.Value(domain.EpochEdited); got == nil || *got != "20" {
		t.Fatalf("expected cached 20, got %v", got)
	}
	if count != 1 {
		t.Errorf("second read must not recompute, count=%d", count)
	}
}

func TestDerivedNode_PropagationDepth(t *testing.T) {
	// Chain: damage -> double -> quadruple
	damage := newDamage(t, "10")

	countB, countC := 0, 0
	double, err := domain.NewDerivedNode("double", "Double", []domain.Node{damage}, doubler(&countB))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quadruple, err := domain.NewDerivedNode("quadruple", "Quadruple", []domain.Node{double}, doubler(&countC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := quadruple.Value(domain.EpochEdited); got == nil || *got != "40" {
		t.Fatalf("expected 40, got %v", got)
	}

	countB, countC = 0, 0
	if err := damage.SetValue(domain.EpochEdited, "15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := quadruple.Value(domain.EpochEdited); got == nil || *got != "60" {
		t.Fatalf("expected 60 after edit, got %v", got)
	}
	if countC != 1 {
		t.Errorf("one edit must cost exactly one recompute at the tail, got %d", countC)
	}
}

func TestDerivedNode_EpochIsolation(t *testing.T) {
	damage := newDamage(t, "10")

	count := 0
	dps, err := domain.NewDerivedNode("dps", "DPS", []domain.Node{damage}, doubler(&count))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := dps.Value(domain.EpochVanilla); got == nil || *got != "20" {
		t.Fatalf("expected vanilla 20, got %v", got)
	}

	if err := damage.SetValue(domain.EpochEdited, "15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count = 0
	if got := dps.Value(domain.EpochVanilla); got == nil || *got != "20" {
		t.Errorf("vanilla epoch leaked an edit: %v", got)
	}
	if count != 0 {
		t.Errorf("vanilla cache entry must survive an edited-epoch edit, count=%d", count)
	}
}

func TestDerivedNode_NilDependencyYieldsNilArgument(t *testing.T) {
	damage := newDamage(t, "10")

	var sawNil bool
	sum, err := domain.NewDerivedNode("sum", "Sum", []domain.Node{damage, nil}, func(args []*string) *string {
		if len(args) == 2 && args[1] == nil {
			sawNil = true
		}
		if args[0] == nil {
			return strptr("")
		}
		return strptr(*args[0])
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := sum.Value(domain.EpochEdited); got == nil || *got != "10" {
		t.Fatalf("expected 10, got %v", got)
	}
	if !sawNil {
		t.Error("nil dependency must surface as nil argument")
	}
}

func TestDerivedNode_ObserverPush(t *testing.T) {
	damage := newDamage(t, "10")

	count := 0
	dps, err := domain.NewDerivedNode("dps", "DPS", []domain.Node{damage}, doubler(&count))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pushed []string
	dps.Observe(func(v *string) {
		if v != nil {
			pushed = append(pushed, *v)
		}
	})

	if err := damage.SetValue(domain.EpochEdited, "15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pushed) != 1 || pushed[0] != "30" {
		t.Errorf("expected eager push of 30, got %v", pushed)
	}

	// The push primes the cache: a later pull is free.
	before := count
	if got := dps.Value(domain.EpochEdited); got == nil || *got != "30" {
		t.Fatalf("expected 30, got %v", got)
	}
	if count != before {
		t.Errorf("pull after push must hit the cache, count went %d -> %d", before, count)
	}
}

func TestDerivedNode_ValueIsACopy(t *testing.T) {
	damage := newDamage(t, "10")

	count := 0
	dps, err := domain.NewDerivedNode("dps", "DPS", []domain.Node{damage}, doubler(&count))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := dps.Value(domain.EpochCurrent)
	if got == nil || *got != "20" {
		t.Fatalf("expected 20, got %v", got)
	}
	*got = "corrupted"

	if again := dps.Value(domain.EpochCurrent); again == nil || *again != "20" {
		t.Errorf("writing through a returned value must not reach the cache, got %v", again)
	}
}

func TestDerivedNode_ReadOnlyDefault(t *testing.T) {
	damage := newDamage(t, "10")
	count := 0
	dps, err := domain.NewDerivedNode("dps", "DPS", []domain.Node{damage}, doubler(&count))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dps.ReadOnly() {
		t.Error("derived nodes default to read-only")
	}
}
