package evaluator

import (
	"context"
	"math/big"
	"slices"
	"strings"
	"testing"
)

func TestNewDefaultFactoryRegistersBuiltins(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{Width: 8, CapacityBits: 100})
	names := f.List()
	if !slices.IsSorted(names) {
		t.Errorf("List() not sorted: %v", names)
	}
	for _, want := range []string{"bigint", "limb", "limb4", "limb-fixed"} {
		if !slices.Contains(names, want) {
			t.Errorf("List() missing %q: %v", want, names)
		}
		if !f.Has(want) {
			t.Errorf("Has(%q) = false", want)
		}
	}
}

func TestFactoryDisplayNames(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{Width: 8, CapacityBits: 100, MaxLimbs: 3})
	tests := map[string]string{
		"bigint":     "bigint (math/big)",
		"limb":       "limb (W=8, max 3 limbs)",
		"limb4":      "limb4 (W=4, max 3 limbs)",
		"limb-fixed": "limb-fixed (W=8, 104 bits)",
	}
	for key, want := range tests {
		ev, err := f.Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if got := ev.Name(); got != want {
			t.Errorf("Get(%q).Name() = %q, want %q", key, got, want)
		}
	}

	def, err := NewDefaultFactory(Options{}).Get("limb")
	if err != nil {
		t.Fatal(err)
	}
	if got := def.Name(); got != "limb (W=64)" {
		t.Errorf("default limb name = %q", got)
	}
}

func TestFactoryGetCachesCreateDoesNot(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{})
	a, err := f.Get("limb4")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := f.Get("limb4")
	if a != b {
		t.Error("Get should return the cached instance")
	}
	c, err := f.Create("limb4")
	if err != nil {
		t.Fatal(err)
	}
	if c == a {
		t.Error("Create should return a fresh instance")
	}
}

func TestFactoryUnknownEngine(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{})
	if _, err := f.Get("nope"); err == nil || !strings.Contains(err.Error(), "unknown engine") {
		t.Errorf("Get(nope) error = %v", err)
	}
	if _, err := f.Create("nope"); err == nil {
		t.Error("Create(nope) should fail")
	}
}

func TestFactoryCreatorFailure(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{Width: 65})
	if _, err := f.Get("limb"); err == nil || !strings.Contains(err.Error(), "engine limb") {
		t.Errorf("Get(limb) with width 65: err = %v", err)
	}
	all := f.GetAll()
	if _, ok := all["limb"]; ok {
		t.Error("GetAll should skip engines whose creator fails")
	}
	if _, ok := all["limb4"]; !ok {
		t.Error("GetAll should still include limb4")
	}
}

func TestFactoryRegisterReplacesCachedEngine(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{})
	first, _ := f.Get("bigint")
	if err := f.Register("bigint", func(Options) (coreEvaluator, error) {
		return stubCore{name: "replacement", result: big.NewInt(42)}, nil
	}); err != nil {
		t.Fatal(err)
	}
	second, _ := f.Get("bigint")
	if first == second || second.Name() != "replacement" {
		t.Errorf("Register did not replace the cached engine: %q", second.Name())
	}
	if err := f.Register("nil", nil); err == nil {
		t.Error("Register with nil creator should fail")
	}
}

func TestRegisterEvaluatorReachesNewFactories(t *testing.T) {
	t.Parallel()

	RegisterEvaluator("registry-test", func(Options) (coreEvaluator, error) {
		return stubCore{name: "registry-test", result: big.NewInt(7)}, nil
	})
	f := NewDefaultFactory(Options{})
	ev, err := f.Get("registry-test")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, err := ev.Evaluate(context.Background(), nil, 0, validReq)
	if err != nil || got.Int64() != 7 {
		t.Errorf("Evaluate = %v, %v", got, err)
	}
}

func TestEveryEngineAgreesOnScenarios(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory(Options{Width: 4, CapacityBits: 64})
	scenarios := []struct {
		req  Request
		want int64
	}{
		{Request{Op: OpAdd, A: big.NewInt(5), B: big.NewInt(3)}, 8},
		{Request{Op: OpMul, A: big.NewInt(5), B: big.NewInt(3)}, 15},
		{Request{Op: OpShiftLeft, A: big.NewInt(3), K: 1}, 6},
		{Request{Op: OpBitLen, A: big.NewInt(0)}, 1},
		{Request{Op: OpSetBit, A: big.NewInt(1), K: 4}, 17},
	}
	for _, name := range []string{"bigint", "limb", "limb4", "limb-fixed"} {
		ev, err := f.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		for _, sc := range scenarios {
			got, err := ev.Evaluate(context.Background(), nil, 0, sc.req)
			if err != nil {
				t.Errorf("%s %s: %v", name, sc.req, err)
				continue
			}
			if got.Int64() != sc.want {
				t.Errorf("%s %s = %s, want %d", name, sc.req, got, sc.want)
			}
		}
	}
}
