// Package ast defines the untyped syntax tree produced by the parser.
// Equality of nodes never depends on spans; spans exist purely for
// diagnostics.
package ast

import "github.com/aethlang/aethc/internal/position"

// Module is a parsed compilation unit: a flat sequence of items.
type Module struct {
	Items []Item
}

// Item is a top-level declaration: a Function or a GlobalLet.
type Item interface {
	itemNode()
	Span() position.Span
}

// Param is a function parameter, with an optional type annotation.
type Param struct {
	Name     string
	TypeName string // "" if unannotated
	Span_    position.Span
}

// Function is a top-level `fn` declaration.
type Function struct {
	Name       string
	Params     []Param
	ReturnType string // "" if unannotated
	Body       []Stmt
	Span_      position.Span
}

func (*Function) itemNode()               {}
func (f *Function) Span() position.Span { return f.Span_ }

// GlobalLet is a module-level `let` binding.
type GlobalLet struct {
	Name    string
	Mutable bool
	Expr    Expr
	Span_   position.Span
}

func (*GlobalLet) itemNode()             {}
func (g *GlobalLet) Span() position.Span { return g.Span_ }

// Stmt is one of Let, Assign, Expr, or Return.
type Stmt interface {
	stmtNode()
	Span() position.Span
}

// LetStmt binds a new local name to the value of Expr.
type LetStmt struct {
	Name    string
	Mutable bool
	Expr    Expr
	Span_   position.Span
}

func (*LetStmt) stmtNode()             {}
func (s *LetStmt) Span() position.Span { return s.Span_ }

// AssignStmt reassigns an existing mutable binding.
type AssignStmt struct {
	Name  string
	Expr  Expr
	Span_ position.Span
}

func (*AssignStmt) stmtNode()             {}
func (s *AssignStmt) Span() position.Span { return s.Span_ }

// ExprStmt evaluates an expression for its side effects, discarding the
// result.
type ExprStmt struct {
	Expr  Expr
	Span_ position.Span
}

func (*ExprStmt) stmtNode()             {}
func (s *ExprStmt) Span() position.Span { return s.Span_ }

// ReturnStmt returns from the enclosing function, optionally with a value.
// A function whose body doesn't end in an explicit return gets one of
// these appended during parsing, with Expr == nil meaning "return unit".
type ReturnStmt struct {
	Expr  Expr // nil for `return;`
	Span_ position.Span
}

func (*ReturnStmt) stmtNode()             {}
func (s *ReturnStmt) Span() position.Span { return s.Span_ }

// Expr is the recursive expression sum.
type Expr interface {
	exprNode()
	Span() position.Span
}

// Ident references a name.
type Ident struct {
	Name  string
	Span_ position.Span
}

func (*Ident) exprNode()             {}
func (e *Ident) Span() position.Span { return e.Span_ }

// LiteralKind distinguishes the primitive literal kinds.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitStr
	LitUnit
)

// Literal is a primitive literal value.
type Literal struct {
	Kind    LiteralKind
	IntVal  int64
	FloatVal float64
	BoolVal  bool
	StrVal   string
	Span_    position.Span
}

func (*Literal) exprNode()             {}
func (e *Literal) Span() position.Span { return e.Span_ }

// Call is a function call `callee(args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Span_  position.Span
}

func (*Call) exprNode()             {}
func (e *Call) Span() position.Span { return e.Span_ }

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
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

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// Binary is a binary expression.
type Binary struct {
	Op    BinaryOp
	LHS   Expr
	RHS   Expr
	Span_ position.Span
}

func (*Binary) exprNode()             {}
func (e *Binary) Span() position.Span { return e.Span_ }

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota // arithmetic negation `-`
	OpNot                // logical not `!`
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "!"
}

// Unary is a unary expression.
type Unary struct {
	Op    UnaryOp
	RHS   Expr
	Span_ position.Span
}

func (*Unary) exprNode()             {}
func (e *Unary) Span() position.Span { return e.Span_ }

// Borrow is a `&` or `&mut` borrow expression. The parser accepts any operand
// as Target; the resolver rejects every target that is not an Ident.
type Borrow struct {
	Mutable bool
	Target  Expr
	Span_   position.Span
}

func (*Borrow) exprNode()             {}
func (e *Borrow) Span() position.Span { return e.Span_ }
