// Package hir defines the typed high-level IR: the AST shape, but with a
// fresh NodeId and a resolved types.Type on every binding and expression.
package hir

import (
	"github.com/aethlang/aethc/internal/position"
	"github.com/aethlang/aethc/internal/types"
)

// NodeId is a monotonic identifier assigned by the resolver, stable within
// a single compilation.
type NodeId uint32

// Module is a resolved compilation unit.
type Module struct {
	Functions []*Function
	Globals   []*GlobalLet
}

// GlobalLet is a resolved module-level binding.
type GlobalLet struct {
	Id    NodeId
	Name  string
	Ty    types.Type
	Expr  Expr
	Span  position.Span
}

// Function is a resolved function: every parameter and the function name
// itself get a NodeId, and ReturnTy is always concrete (Unit if
// unannotated).
type Function struct {
	Id       NodeId
	Name     string
	Params   []Param
	ReturnTy types.Type
	Body     []Stmt
	Span     position.Span
}

// Param is a resolved parameter binding.
type Param struct {
	Id   NodeId
	Name string
	Ty   types.Type
	Span position.Span
}

// Stmt is the resolved statement sum.
type Stmt interface {
	stmtNode()
	Span() position.Span
}

// Let binds a new NodeId to the result of Expr.
type Let struct {
	Id      NodeId
	Name    string
	Mutable bool
	Ty      types.Type
	Expr    Expr
	Span_   position.Span
}

func (*Let) stmtNode()             {}
func (s *Let) Span() position.Span { return s.Span_ }

// Assign reassigns the binding named by Id.
type Assign struct {
	Id    NodeId
	Name  string
	Expr  Expr
	Span_ position.Span
}

func (*Assign) stmtNode()             {}
func (s *Assign) Span() position.Span { return s.Span_ }

// ExprStmt evaluates Expr for effect, discarding its value.
type ExprStmt struct {
	Expr  Expr
	Span_ position.Span
}

func (*ExprStmt) stmtNode()             {}
func (s *ExprStmt) Span() position.Span { return s.Span_ }

// Return returns from the enclosing function. Expr is nil only for a
// `return;` with no value — the resolver still types its implied Unit, but
// the statement itself keeps Expr nil to preserve the source shape, mirrored
// into MIR as "emit nothing, set terminator Return" per spec.md §4.5.
type Return struct {
	Expr  Expr // nil for `return;`
	Span_ position.Span
}

func (*Return) stmtNode()             {}
func (s *Return) Span() position.Span { return s.Span_ }

// Expr is the resolved, typed expression sum. Every Expr has a Type().
type Expr interface {
	exprNode()
	Span() position.Span
	Type() types.Type
}

// Ident references the binding with the given NodeId.
type Ident struct {
	Id    NodeId
	Name  string
	Ty    types.Type
	Span_ position.Span
}

func (*Ident) exprNode()             {}
func (e *Ident) Span() position.Span { return e.Span_ }
func (e *Ident) Type() types.Type    { return e.Ty }

// LiteralKind mirrors ast.LiteralKind.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitStr
	LitUnit
)

// Literal is a typed primitive literal.
type Literal struct {
	Kind     LiteralKind
	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string
	Ty       types.Type
	Span_    position.Span
}

func (*Literal) exprNode()             {}
func (e *Literal) Span() position.Span { return e.Span_ }
func (e *Literal) Type() types.Type    { return e.Ty }

// Builtin is a reference to an intrinsic, currently only Print, per
// spec.md §3/§4.3 ("The reserved name `print` resolves to the Builtin::Print
// expression with type Unit").
type Builtin struct {
	Kind  BuiltinKind
	Ty    types.Type
	Span_ position.Span
}

// BuiltinKind enumerates the intrinsics; Print is the only one this core
// supports, per spec.md §6.
type BuiltinKind int

const (
	BuiltinPrint BuiltinKind = iota
)

func (*Builtin) exprNode()             {}
func (e *Builtin) Span() position.Span { return e.Span_ }
func (e *Builtin) Type() types.Type    { return e.Ty }

// Call is a resolved call expression.
type Call struct {
	Callee Expr
	Args   []Expr
	Ty     types.Type
	Span_  position.Span
}

func (*Call) exprNode()             {}
func (e *Call) Span() position.Span { return e.Span_ }
func (e *Call) Type() types.Type    { return e.Ty }

// Binary is a resolved binary expression.
type Binary struct {
	Op    BinOpKind
	LHS   Expr
	RHS   Expr
	Ty    types.Type
	Span_ position.Span
}

// BinOpKind is the HIR's own binary-operator enum, kept distinct from
// ast.BinaryOp so HIR never imports the parser's package.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func (*Binary) exprNode()             {}
func (e *Binary) Span() position.Span { return e.Span_ }
func (e *Binary) Type() types.Type    { return e.Ty }

// UnOpKind is the HIR's own unary-operator enum.
type UnOpKind int

const (
	OpNeg UnOpKind = iota
	OpNot
)

// Unary is a resolved unary expression.
type Unary struct {
	Op    UnOpKind
	RHS   Expr
	Ty    types.Type
	Span_ position.Span
}

func (*Unary) exprNode()             {}
func (e *Unary) Span() position.Span { return e.Span_ }

// Borrow references an existing binding by NodeId rather than evaluating it;
// the borrow checker's borrow_var transition (spec.md §4.4) keys off
// TargetId, not a nested Ident node.
type Borrow struct {
	TargetId   NodeId
	TargetName string
	Mutable    bool
	Ty         types.Type
	Span_      position.Span
}

func (*Borrow) exprNode()             {}
func (e *Borrow) Span() position.Span { return e.Span_ }
func (e *Borrow) Type() types.Type    { return e.Ty }
func (e *Unary) Type() types.Type    { return e.Ty }
