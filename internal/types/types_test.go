package types

import "testing"

func TestUnifyReflexive(t *testing.T) {
	for _, tt := range []Type{TInt, TFloat, TBool, TStr, TUnit} {
		got, ok := Unify(tt, tt)
		if !ok || !got.Equal(tt) {
			t.Errorf("Unify(%s,%s) = %s,%v; want %s,true", tt, tt, got, ok, tt)
		}
	}
}

func TestUnifyMixedNumeric(t *testing.T) {
	got, ok := Unify(TInt, TFloat)
	if !ok || !got.Equal(TFloat) {
		t.Fatalf("Unify(Int,Float) = %s,%v; want Float,true", got, ok)
	}
	got, ok = Unify(TFloat, TInt)
	if !ok || !got.Equal(TFloat) {
		t.Fatalf("Unify(Float,Int) = %s,%v; want Float,true", got, ok)
	}
}

func TestUnifyIncompatible(t *testing.T) {
	pairs := [][2]Type{{TBool, TInt}, {TStr, TFloat}, {TUnit, TBool}}
	for _, p := range pairs {
		if _, ok := Unify(p[0], p[1]); ok {
			t.Errorf("Unify(%s,%s) unexpectedly succeeded", p[0], p[1])
		}
	}
}

// TestUnifyCommutativeAndIdempotent checks spec.md §8 invariant 7:
// unify(a,b) = unify(b,a); unify(unify(a,b),b) = unify(a,b).
func TestUnifyCommutativeAndIdempotent(t *testing.T) {
	all := []Type{TInt, TFloat, TBool, TStr, TUnit}
	for _, a := range all {
		for _, b := range all {
			ab, okAB := Unify(a, b)
			ba, okBA := Unify(b, a)
			if okAB != okBA || (okAB && !ab.Equal(ba)) {
				t.Fatalf("Unify not commutative for (%s,%s): (%s,%v) vs (%s,%v)", a, b, ab, okAB, ba, okBA)
			}
			if okAB {
				again, ok := Unify(ab, b)
				if !ok || !again.Equal(ab) {
					t.Fatalf("Unify not idempotent for (%s,%s): got (%s,%v), want (%s,true)", a, b, again, ok, ab)
				}
			}
		}
	}
}

func TestIsCopy(t *testing.T) {
	copyTypes := []Type{TInt, TFloat, TBool, TUnit}
	for _, tt := range copyTypes {
		if !tt.IsCopy() {
			t.Errorf("%s should be a copy type", tt)
		}
	}
	if TStr.IsCopy() {
		t.Error("Str should not be a copy type")
	}
}

func TestResolveAnnotation(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"Int", TInt, true},
		{"int", TInt, true},
		{"Float", TFloat, true},
		{"float", TFloat, true},
		{"Bool", TBool, true},
		{"bool", TBool, true},
		{"Str", TStr, true},
		{"String", TStr, true},
		{"Wat", Type{}, false},
	}
	for _, tt := range tests {
		got, ok := ResolveAnnotation(tt.name)
		if ok != tt.ok {
			t.Errorf("ResolveAnnotation(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ResolveAnnotation(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestInferCtxSolvesTrivialConstraints(t *testing.T) {
	c := NewInferCtx()
	a, b := c.Fresh(), c.Fresh()
	c.Bind(a, TInt)
	c.Bind(b, TFloat)
	c.Equate(a, b)
	if !c.Solve() {
		t.Fatal("expected trivial int/float equate to solve")
	}
	got, ok := c.Lookup(a)
	if !ok || !got.Equal(TFloat) {
		t.Fatalf("expected a to widen to Float, got %s,%v", got, ok)
	}
}
