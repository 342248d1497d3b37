package borrowck

import (
	"testing"

	"github.com/aethlang/aethc/internal/hir"
	"github.com/aethlang/aethc/internal/parser"
	"github.com/aethlang/aethc/internal/resolver"
)

// lowerMain parses and resolves src, asserts the resolver reported nothing,
// and returns the HIR function named "f" (the function under test in every
// case below).
func lowerMain(t *testing.T, src string) *hir.Function {
	t.Helper()
	mod, perrs := parser.Parse(src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	hmod, rerrs := resolver.LowerToHIR(mod, src)
	if len(rerrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", rerrs)
	}
	for _, fn := range hmod.Functions {
		if fn.Name == "f" {
			return fn
		}
	}
	t.Fatal("no function named f in source")
	return nil
}

func TestDoubleMoveOfString(t *testing.T) {
	fn := lowerMain(t, `fn f() { let s = "abc"; let t = s; let u = s; }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != DoubleMove {
		t.Fatalf("expected DoubleMove, got %v", errs[0].Kind)
	}
	if errs[0].Code != "E011" {
		t.Fatalf("expected E011, got %s", errs[0].Code)
	}
}

func TestUseAfterMoveOfString(t *testing.T) {
	fn := lowerMain(t, `fn f() { let s = "abc"; let t = s; s(); }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != UseAfterMove {
		t.Fatalf("expected UseAfterMove, got %v", errs[0].Kind)
	}
}

func TestSecondMutBorrowSameStatement(t *testing.T) {
	fn := lowerMain(t, `fn g(a: Int, b: Int) { } fn f() { let mut x = 1; g(&mut x, &mut x); }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != SecondMutBorrow {
		t.Fatalf("expected SecondMutBorrow, got %v", errs[0].Kind)
	}
	if errs[0].Code != "E010" {
		t.Fatalf("expected E010, got %s", errs[0].Code)
	}
}

func TestMutBorrowCleanedUpBetweenStatements(t *testing.T) {
	fn := lowerMain(t, `fn g(a: Int) { } fn f() { let mut x = 1; g(&mut x); g(&mut x); }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 0 {
		t.Fatalf("expected no errors across statement boundaries, got %v", errs)
	}
}

func TestMoveWhileBorrowedWithinOneStatement(t *testing.T) {
	fn := lowerMain(t, `fn g(a: Str, b: Str) { } fn f() { let s = "abc"; g(&mut s, s); }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != AssignWhileBorrowed {
		t.Fatalf("expected AssignWhileBorrowed, got %v", errs[0].Kind)
	}
}

func TestCopyTypesNeverMove(t *testing.T) {
	fn := lowerMain(t, `fn f() { let x = 1; let y = x; let z = x; }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 0 {
		t.Fatalf("copy types should never report move errors, got %v", errs)
	}
}

func TestRebindingAfterMoveClearsMovedState(t *testing.T) {
	fn := lowerMain(t, `fn f() { let mut s = "abc"; let t = s; s = "def"; let u = s; }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 0 {
		t.Fatalf("reassigning a moved variable should make it Live again, got %v", errs)
	}
}

func TestAssignWhileBorrowedErrorCarriesPrevSpan(t *testing.T) {
	fn := lowerMain(t, `fn g(a: Str, b: Str) { } fn f() { let s = "abc"; g(&mut s, s); }`)
	errs := CheckFnBody(fn.Body)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !errs[0].PrevSpan.IsValid() {
		t.Fatalf("expected a valid previous span pointing at the borrow")
	}
}
