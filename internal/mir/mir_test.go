package mir

import (
	"testing"

	"github.com/aethlang/aethc/internal/hir"
	"github.com/aethlang/aethc/internal/parser"
	"github.com/aethlang/aethc/internal/resolver"
)

func lowerFn(t *testing.T, src, name string) *hir.Function {
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
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function named %s", name)
	return nil
}

// assertWellFormed checks the spec.md §8 invariants that apply to any
// lowered body: every block has exactly one terminator (guaranteed by
// construction here, but checked anyway) and every referenced BlockId is
// valid.
func assertWellFormed(t *testing.T, body *Body) {
	t.Helper()
	for i, blk := range body.Blocks {
		if blk.Terminator == nil {
			t.Fatalf("block %d has no terminator", i)
		}
		switch term := blk.Terminator.(type) {
		case *Goto:
			if int(term.Target) < 0 || int(term.Target) >= len(body.Blocks) {
				t.Fatalf("block %d: Goto target %d out of range", i, term.Target)
			}
		case *CondBranch:
			if int(term.Then) < 0 || int(term.Then) >= len(body.Blocks) {
				t.Fatalf("block %d: CondBranch then-target %d out of range", i, term.Then)
			}
			if int(term.Else) < 0 || int(term.Else) >= len(body.Blocks) {
				t.Fatalf("block %d: CondBranch else-target %d out of range", i, term.Else)
			}
		}
	}
}

// assertStorageLiveBeforeUse checks spec.md §8 invariant 5: every temp
// other than RET_TEMP has a StorageLive before its first use (as an operand
// or as an Assign destination after that point).
func assertStorageLiveBeforeUse(t *testing.T, body *Body) {
	t.Helper()
	for bi, blk := range body.Blocks {
		live := map[TempId]bool{}
		checkOperand := func(op Operand) {
			if tmp, ok := op.(*Temp); ok {
				if !live[tmp.Id] {
					t.Fatalf("block %d: temp t%d used before StorageLive", bi, tmp.Id)
				}
			}
		}
		for _, s := range blk.Statements {
			switch st := s.(type) {
			case *StorageLive:
				live[st.Temp] = true
			case *Assign:
				if st.Dest.IsTemp && st.Dest.TempId != RetTemp && !live[st.Dest.TempId] {
					t.Fatalf("block %d: temp t%d assigned before StorageLive", bi, st.Dest.TempId)
				}
				switch rv := st.Rvalue.(type) {
				case *Use:
					checkOperand(rv.Op)
				case *BinaryOp:
					checkOperand(rv.LHS)
					checkOperand(rv.RHS)
				case *UnaryOp:
					checkOperand(rv.Src)
				case *Call:
					for _, a := range rv.Args {
						checkOperand(a)
					}
				}
			}
		}
	}
}

func TestAddFunctionLowersToSingleBlockWithOneBinaryAndRetAssign(t *testing.T) {
	fn := lowerFn(t, "fn add(a: Int, b: Int) -> Int { return a + b; }", "add")
	body := LowerFn(fn)
	assertWellFormed(t, body)
	assertStorageLiveBeforeUse(t, body)

	if len(body.Blocks) != 1 {
		t.Fatalf("expected exactly one block, got %d", len(body.Blocks))
	}
	blk := body.Blocks[0]
	if _, ok := blk.Terminator.(*Return); !ok {
		t.Fatalf("expected Return terminator, got %T", blk.Terminator)
	}

	var binaryAssigns, retAssigns int
	for _, s := range blk.Statements {
		as, ok := s.(*Assign)
		if !ok {
			continue
		}
		if _, ok := as.Rvalue.(*BinaryOp); ok {
			binaryAssigns++
		}
		if as.Dest.IsTemp && as.Dest.TempId == RetTemp {
			retAssigns++
		}
	}
	if binaryAssigns != 1 {
		t.Fatalf("expected exactly one BinaryOp assignment, got %d", binaryAssigns)
	}
	if retAssigns != 1 {
		t.Fatalf("expected exactly one RET_TEMP assignment, got %d", retAssigns)
	}
}

func TestEmptyBodyLowersToBareReturn(t *testing.T) {
	fn := lowerFn(t, "fn f() { }", "f")
	body := LowerFn(fn)
	assertWellFormed(t, body)
	if len(body.Blocks) != 1 {
		t.Fatalf("expected exactly one block, got %d", len(body.Blocks))
	}
	if len(body.Blocks[0].Statements) != 0 {
		t.Fatalf("expected no statements for an empty body, got %d", len(body.Blocks[0].Statements))
	}
	if _, ok := body.Blocks[0].Terminator.(*Return); !ok {
		t.Fatalf("expected Return terminator, got %T", body.Blocks[0].Terminator)
	}
}

func TestStatementsAfterReturnAreNotLowered(t *testing.T) {
	// The trailing `let x = 2;` makes the parser append its own implicit
	// `return;`, so this body is well-typed (both returns are Unit) while
	// still giving the lowerer an explicit Return to stop at before the
	// unreachable `let`.
	fn := lowerFn(t, "fn f() { return (); let x = 2; }", "f")
	body := LowerFn(fn)
	assertWellFormed(t, body)

	if len(body.Blocks[0].Statements) != 1 {
		t.Fatalf("expected lowering to stop at the first Return, got %d statements", len(body.Blocks[0].Statements))
	}
	as, ok := body.Blocks[0].Statements[0].(*Assign)
	if !ok || !as.Dest.IsTemp || as.Dest.TempId != RetTemp {
		t.Fatalf("expected the sole statement to be the RET_TEMP assignment, got %#v", body.Blocks[0].Statements[0])
	}
}

func TestPrintCallLowersToNamedCallRvalue(t *testing.T) {
	fn := lowerFn(t, `fn f() { print("hi"); }`, "f")
	body := LowerFn(fn)
	assertWellFormed(t, body)
	assertStorageLiveBeforeUse(t, body)

	var sawCall bool
	for _, s := range body.Blocks[0].Statements {
		if as, ok := s.(*Assign); ok {
			if call, ok := as.Rvalue.(*Call); ok {
				sawCall = true
				if call.Name != "print" {
					t.Fatalf("expected callee name 'print', got %q", call.Name)
				}
				if len(call.Args) != 1 {
					t.Fatalf("expected one argument, got %d", len(call.Args))
				}
			}
		}
	}
	if !sawCall {
		t.Fatal("expected a Call rvalue for the print invocation")
	}
}

func TestBarePrintReferenceLowersWithoutArgs(t *testing.T) {
	// print referenced but never called (`print;`) is still well-typed HIR —
	// the resolver only checks arity/argument type when print is a Call's
	// callee — so the lowerer must handle a bare *hir.Builtin operand
	// instead of assuming it only ever appears as a Call's callee.
	fn := lowerFn(t, `fn f() { print; }`, "f")
	body := LowerFn(fn)
	assertWellFormed(t, body)
	assertStorageLiveBeforeUse(t, body)

	var sawCall bool
	for _, s := range body.Blocks[0].Statements {
		if as, ok := s.(*Assign); ok {
			if call, ok := as.Rvalue.(*Call); ok {
				sawCall = true
				if call.Name != "print" {
					t.Fatalf("expected callee name 'print', got %q", call.Name)
				}
				if len(call.Args) != 0 {
					t.Fatalf("expected zero arguments for a bare reference, got %d", len(call.Args))
				}
			}
		}
	}
	if !sawCall {
		t.Fatal("expected a Call rvalue for the bare print reference")
	}
}

func TestNestedBinaryExpressionAllocatesMultipleTemps(t *testing.T) {
	fn := lowerFn(t, "fn f() -> Int { return 1 + 2 * 3; }", "f")
	body := LowerFn(fn)
	assertWellFormed(t, body)
	assertStorageLiveBeforeUse(t, body)

	var lives int
	for _, s := range body.Blocks[0].Statements {
		if _, ok := s.(*StorageLive); ok {
			lives++
		}
	}
	if lives != 2 {
		t.Fatalf("expected two temporaries (one per binary operator), got %d", lives)
	}
}
