// Package mir lowers a resolved hir.Function into a three-address,
// basic-block based IR: explicit temporaries, typed operands, and
// terminators, per spec.md §4.5. The current lowerer only ever needs a
// single entry block (this core has no if/while surface yet) but the block
// vector and Goto/CondBranch terminators exist for that downstream
// expansion, per spec.md's own note.
package mir

import (
	"fmt"

	"github.com/aethlang/aethc/internal/hir"
	"github.com/aethlang/aethc/internal/types"
)

// TempId names a MIR temporary, unique within one function body.
type TempId uint32

// RetTemp is the reserved temporary conveying a function's return value; it
// is exempt from the "StorageLive before first use" invariant since it is
// never read before code generation.
const RetTemp TempId = 0

// BlockId indexes a function's block vector.
type BlockId int

// Place is an assignable MIR location: either an existing HIR binding (by
// NodeId) or a MIR-only temporary.
type Place struct {
	IsTemp bool
	VarId  hir.NodeId
	TempId TempId
}

func placeVar(id hir.NodeId) Place  { return Place{VarId: id} }
func placeTemp(id TempId) Place     { return Place{IsTemp: true, TempId: id} }
func (p Place) String() string {
	if p.IsTemp {
		return fmt.Sprintf("t%d", p.TempId)
	}
	return fmt.Sprintf("_%d", p.VarId)
}

// Operand is the closed sum `Operand ∈ {Const, Var, Temp}` from spec.md §3.
type Operand interface {
	operandNode()
	Type() types.Type
}

// Const is a literal operand.
type Const struct {
	Kind     hir.LiteralKind
	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string
	Ty       types.Type
}

func (*Const) operandNode()       {}
func (c *Const) Type() types.Type { return c.Ty }

// Var references an existing HIR binding by NodeId.
type Var struct {
	Id hir.NodeId
	Ty types.Type
}

func (*Var) operandNode()       {}
func (v *Var) Type() types.Type { return v.Ty }

// Temp references a MIR-only temporary.
type Temp struct {
	Id TempId
	Ty types.Type
}

func (*Temp) operandNode()       {}
func (t *Temp) Type() types.Type { return t.Ty }

// Rvalue is the closed sum `Rvalue ∈ {Use, BinaryOp, UnaryOp, Call}`.
type Rvalue interface {
	rvalueNode()
}

// Use wraps a single operand (no computation).
type Use struct {
	Op Operand
}

func (*Use) rvalueNode() {}

// BinaryOp applies a HIR binary operator to two operands.
type BinaryOp struct {
	Op  hir.BinOpKind
	LHS Operand
	RHS Operand
}

func (*BinaryOp) rvalueNode() {}

// UnaryOp applies a HIR unary operator to one operand.
type UnaryOp struct {
	Op  hir.UnOpKind
	Src Operand
}

func (*UnaryOp) rvalueNode() {}

// Call invokes a named function (or builtin) with the given arguments. Code
// generation dispatches builtins (e.g. "print") per spec.md §4.5.
type Call struct {
	Name string
	Args []Operand
}

func (*Call) rvalueNode() {}

// Statement is the closed sum `Statement ∈ {Assign, StorageLive,
// StorageDead}`. StorageDead is never emitted by this lowerer — this core
// has no place where a temporary's storage needs an explicit end before the
// function returns — but it stays part of the sum for a future lowering
// pass (e.g. loop bodies) that would need it.
type Statement interface {
	stmtNode()
}

// Assign writes the result of Rvalue into Dest.
type Assign struct {
	Dest   Place
	Rvalue Rvalue
}

func (*Assign) stmtNode() {}

// StorageLive marks the start of a temporary's storage.
type StorageLive struct {
	Temp TempId
}

func (*StorageLive) stmtNode() {}

// StorageDead marks the end of a temporary's storage.
type StorageDead struct {
	Temp TempId
}

func (*StorageDead) stmtNode() {}

// Terminator is the closed sum `Terminator ∈ {Return, Goto, CondBranch}`.
type Terminator interface {
	terminatorNode()
}

// Return ends the function, reading RET_TEMP.
type Return struct{}

func (*Return) terminatorNode() {}

// Goto jumps unconditionally to Target. Unused by the current lowerer;
// reserved for if/while expansion, per spec.md §4.5.
type Goto struct {
	Target BlockId
}

func (*Goto) terminatorNode() {}

// CondBranch jumps to Then or Else depending on Cond. Unused by the current
// lowerer; reserved for if/while expansion.
type CondBranch struct {
	Cond Operand
	Then BlockId
	Else BlockId
}

func (*CondBranch) terminatorNode() {}

// BasicBlock is a straight-line sequence of statements ending in exactly
// one terminator.
type BasicBlock struct {
	Statements []Statement
	Terminator Terminator
}

// Body is a lowered function: `MirBody`, per spec.md §4.5. Block 0 is
// always the entry block.
type Body struct {
	Blocks []*BasicBlock
	RetTy  types.Type
}

// newBlock allocates a fresh block with a provisional Return terminator —
// construction without a terminator is impossible by this API, per
// spec.md §3.
func (b *Body) newBlock() BlockId {
	b.Blocks = append(b.Blocks, &BasicBlock{Terminator: &Return{}})
	return BlockId(len(b.Blocks) - 1)
}

type lowerer struct {
	body     *Body
	cur      BlockId
	nextTemp TempId
}

func (l *lowerer) block() *BasicBlock {
	return l.body.Blocks[l.cur]
}

func (l *lowerer) emit(s Statement) {
	blk := l.block()
	blk.Statements = append(blk.Statements, s)
}

func (l *lowerer) freshTemp() TempId {
	id := l.nextTemp
	l.nextTemp++
	return id
}

// LowerFn is the library entry point named in spec.md §6:
// `mir::lower_fn(HirFn) -> MirBody`.
func LowerFn(fn *hir.Function) *Body {
	body := &Body{RetTy: fn.ReturnTy}
	l := &lowerer{body: body, nextTemp: RetTemp + 1}
	l.cur = l.body.newBlock()

	for _, s := range fn.Body {
		if l.lowerStmt(s) {
			break
		}
	}
	return body
}

// lowerStmt lowers one HIR statement and reports whether the block's
// terminator has now been set (Return(Some/None)), in which case the caller
// must stop processing further statements in this block, per spec.md §4.5.
func (l *lowerer) lowerStmt(s hir.Stmt) (stopped bool) {
	switch st := s.(type) {
	case *hir.Let:
		op := l.lowerExpr(st.Expr)
		l.emit(&Assign{Dest: placeVar(st.Id), Rvalue: &Use{Op: op}})
		return false

	case *hir.Assign:
		op := l.lowerExpr(st.Expr)
		l.emit(&Assign{Dest: placeVar(st.Id), Rvalue: &Use{Op: op}})
		return false

	case *hir.ExprStmt:
		l.lowerExpr(st.Expr)
		return false

	case *hir.Return:
		if st.Expr != nil {
			op := l.lowerExpr(st.Expr)
			l.emit(&Assign{Dest: placeTemp(RetTemp), Rvalue: &Use{Op: op}})
		}
		l.block().Terminator = &Return{}
		return true

	default:
		panic(fmt.Sprintf("mir: unknown stmt type %T", s))
	}
}

// lowerExpr lowers e and returns the Operand it evaluates to: Const for
// literals, Var for identifiers, and a fresh Temp (preceded by StorageLive
// and an Assign) for everything compound — including a bare reference to a
// builtin, which has no Const/Var representation of its own — per
// spec.md §4.5.
func (l *lowerer) lowerExpr(e hir.Expr) Operand {
	switch ex := e.(type) {
	case *hir.Literal:
		return &Const{Kind: ex.Kind, IntVal: ex.IntVal, FloatVal: ex.FloatVal, BoolVal: ex.BoolVal, StrVal: ex.StrVal, Ty: ex.Ty}

	case *hir.Ident:
		return &Var{Id: ex.Id, Ty: ex.Ty}

	case *hir.Builtin:
		// A bare reference to a builtin (not immediately called, e.g.
		// `print;` or `let x = print;`) is still well-typed HIR — the
		// resolver only validates arity/argument type when print is the
		// callee of a Call — so the lowerer must handle it rather than
		// assume every Builtin arrives through lowerExpr's *hir.Call case.
		// It lowers to a zero-argument call naming the builtin; code
		// generation never actually calls `aethc_print_*` with no
		// arguments, but no well-typed program reaches this at runtime.
		t := l.freshTemp()
		l.emit(&StorageLive{Temp: t})
		l.emit(&Assign{Dest: placeTemp(t), Rvalue: &Call{Name: calleeName(ex), Args: nil}})
		return &Temp{Id: t, Ty: ex.Ty}

	case *hir.Borrow:
		// No dedicated Rvalue variant exists for taking a reference in this
		// core's closed MIR sum; a borrow is lowered the same as a plain
		// binding reference since nothing downstream here distinguishes them.
		return &Var{Id: ex.TargetId, Ty: ex.Ty}

	case *hir.Binary:
		t := l.freshTemp()
		l.emit(&StorageLive{Temp: t})
		lhs := l.lowerExpr(ex.LHS)
		rhs := l.lowerExpr(ex.RHS)
		l.emit(&Assign{Dest: placeTemp(t), Rvalue: &BinaryOp{Op: ex.Op, LHS: lhs, RHS: rhs}})
		return &Temp{Id: t, Ty: ex.Ty}

	case *hir.Unary:
		t := l.freshTemp()
		l.emit(&StorageLive{Temp: t})
		src := l.lowerExpr(ex.RHS)
		l.emit(&Assign{Dest: placeTemp(t), Rvalue: &UnaryOp{Op: ex.Op, Src: src}})
		return &Temp{Id: t, Ty: ex.Ty}

	case *hir.Call:
		t := l.freshTemp()
		l.emit(&StorageLive{Temp: t})
		args := make([]Operand, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = l.lowerExpr(a)
		}
		l.emit(&Assign{Dest: placeTemp(t), Rvalue: &Call{Name: calleeName(ex.Callee), Args: args}})
		return &Temp{Id: t, Ty: ex.Ty}

	default:
		panic(fmt.Sprintf("mir: unknown expr type %T", e))
	}
}

// calleeName resolves the name MIR calls by. The resolver rejects any Call
// whose callee isn't a plain name or the print builtin (errcode.E009NotCallable)
// before this ever runs, so a resolved, borrow-checked function body never
// reaches the default case below.
func calleeName(e hir.Expr) string {
	switch c := e.(type) {
	case *hir.Builtin:
		if c.Kind == hir.BuiltinPrint {
			return "print"
		}
		return "?builtin"
	case *hir.Ident:
		return c.Name
	default:
		panic(fmt.Sprintf("mir: non-callable callee %T reached lowering", e))
	}
}
