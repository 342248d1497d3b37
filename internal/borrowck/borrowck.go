// Package borrowck implements the flow-sensitive move/mutable-borrow state
// machine over HIR described in spec.md §4.4: a variable's state is one of
// Live, Moved, or MutBorrowed, and every statement ends with a cleanup sweep
// that resets any live mutable borrow back to Live (Moved is terminal until
// the variable is rebound).
package borrowck

import (
	"fmt"

	"github.com/aethlang/aethc/internal/diag"
	"github.com/aethlang/aethc/internal/errcode"
	"github.com/aethlang/aethc/internal/hir"
	"github.com/aethlang/aethc/internal/position"
)

// ErrorKind is one of the four violation kinds spec.md §4.4 names.
type ErrorKind int

const (
	UseAfterMove ErrorKind = iota
	DoubleMove
	SecondMutBorrow
	AssignWhileBorrowed
)

func (k ErrorKind) String() string {
	switch k {
	case UseAfterMove:
		return "use of a moved value"
	case DoubleMove:
		return "value moved a second time"
	case SecondMutBorrow:
		return "second mutable borrow while one is still live"
	case AssignWhileBorrowed:
		return "assignment while a mutable borrow is still live"
	default:
		return "unknown borrow error"
	}
}

// Error is a single borrow-checker diagnostic: BorrowError{kind, code, span,
// prev_span} per spec.md §4.4/§6. PrevSpan points at what put the variable
// into the state the violation was found in: the moving identifier or the
// borrow expression.
type Error struct {
	Kind     ErrorKind
	Code     string
	Span     position.Span
	PrevSpan position.Span
}

func (e Error) Error() string {
	return fmt.Sprintf("%s [%s]: %s (previous: %s)", e.Span, e.Code, e.Kind, e.PrevSpan)
}

// ToDiagnostic renders e in the shared Diagnostic shape the driver prints.
func (e Error) ToDiagnostic() diag.Diagnostic {
	return diag.WithCode(e.Code, e.Span, e.Kind.String())
}

type stateKind int

const (
	live stateKind = iota
	moved
	mutBorrowed
)

type varState struct {
	kind stateKind
	span position.Span // where the current state was set
}

type ctxKind int

const (
	useCtx ctxKind = iota
	moveCtx
)

// Checker runs check_fn_body over a single function body. A fresh Checker
// must be used per function.
type Checker struct {
	states map[hir.NodeId]*varState
	errs   []Error
}

func newChecker() *Checker {
	return &Checker{states: make(map[hir.NodeId]*varState)}
}

func (c *Checker) get(id hir.NodeId) *varState {
	st, ok := c.states[id]
	if !ok {
		st = &varState{kind: live}
		c.states[id] = st
	}
	return st
}

func (c *Checker) report(kind ErrorKind, code string, span, prevSpan position.Span) {
	c.errs = append(c.errs, Error{Kind: kind, Code: code, Span: span, PrevSpan: prevSpan})
}

// useVar is the use_var(id) transition from spec.md §4.4.
func (c *Checker) useVar(id hir.NodeId, span position.Span) {
	st := c.get(id)
	if st.kind == moved {
		c.report(UseAfterMove, errcode.E011UseAfterMove, span, st.span)
	}
}

// moveVar is the move_var(id) transition from spec.md §4.4.
func (c *Checker) moveVar(id hir.NodeId, span position.Span) {
	st := c.get(id)
	switch st.kind {
	case mutBorrowed:
		c.report(AssignWhileBorrowed, errcode.E010AssignWhileBorrowed, span, st.span)
	case moved:
		c.report(DoubleMove, errcode.E011DoubleMove, span, st.span)
	}
	st.kind = moved
	st.span = span
}

// borrowVar is the borrow_var(id) transition from spec.md §4.4. Shared
// mutability (plain `&`) and exclusive (`&mut`) are tracked identically here
// since this core's only borrow kind that can conflict is a live mutable
// borrow; immutability of the target is the resolver's concern.
func (c *Checker) borrowVar(id hir.NodeId, span position.Span) {
	st := c.get(id)
	switch st.kind {
	case mutBorrowed:
		c.report(SecondMutBorrow, errcode.E010SecondMutBorrow, span, st.span)
	case moved:
		c.report(UseAfterMove, errcode.E011UseAfterMove, span, st.span)
	}
	st.kind = mutBorrowed
	st.span = span
}

// checkAssignTarget and setLive split the Stmt::Assign transition from
// spec.md §4.4 into its "before" and "after" halves so the RHS is checked
// against the pre-assignment state, as the rule specifies.
func (c *Checker) checkAssignTarget(id hir.NodeId, span position.Span) {
	st := c.get(id)
	if st.kind == mutBorrowed {
		c.report(AssignWhileBorrowed, errcode.E010AssignWhileBorrowed, span, st.span)
	}
}

func (c *Checker) setLive(id hir.NodeId, span position.Span) {
	st := c.get(id)
	st.kind = live
	st.span = span
}

// endStatement is the cleanup transition: any MutBorrowed becomes Live.
// Moved is never reset here — only a fresh Let or an Assign can do that.
func (c *Checker) endStatement() {
	for _, st := range c.states {
		if st.kind == mutBorrowed {
			st.kind = live
		}
	}
}

func (c *Checker) walkExpr(e hir.Expr, ctx ctxKind) {
	switch ex := e.(type) {
	case *hir.Ident:
		if ctx == moveCtx && !ex.Ty.IsCopy() {
			c.moveVar(ex.Id, ex.Span())
		} else {
			c.useVar(ex.Id, ex.Span())
		}
	case *hir.Borrow:
		// A borrow always invokes borrow_var on its target, regardless of
		// the ambient context it appears in.
		c.borrowVar(ex.TargetId, ex.Span())
	case *hir.Literal, *hir.Builtin:
		// no variable reference
	case *hir.Call:
		c.walkExpr(ex.Callee, useCtx)
		for _, a := range ex.Args {
			c.walkExpr(a, moveCtx)
		}
	case *hir.Binary:
		c.walkExpr(ex.LHS, useCtx)
		c.walkExpr(ex.RHS, useCtx)
	case *hir.Unary:
		c.walkExpr(ex.RHS, useCtx)
	default:
		panic(fmt.Sprintf("borrowck: unknown expr type %T", e))
	}
}

func (c *Checker) walkStmt(s hir.Stmt) {
	switch st := s.(type) {
	case *hir.Let:
		c.walkExpr(st.Expr, moveCtx)
		c.get(st.Id) // the new binding starts Live
	case *hir.Assign:
		c.checkAssignTarget(st.Id, st.Span())
		c.walkExpr(st.Expr, moveCtx)
		c.setLive(st.Id, st.Span())
	case *hir.ExprStmt:
		c.walkExpr(st.Expr, moveCtx)
	case *hir.Return:
		if st.Expr != nil {
			c.walkExpr(st.Expr, moveCtx)
		}
	default:
		panic(fmt.Sprintf("borrowck: unknown stmt type %T", s))
	}
}

// CheckFnBody is the library entry point named in spec.md §6:
// `check_fn_body(Block) -> [BorrowError]`.
func CheckFnBody(body []hir.Stmt) []Error {
	c := newChecker()
	for _, s := range body {
		c.walkStmt(s)
		c.endStatement()
	}
	return c.errs
}
