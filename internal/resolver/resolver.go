// Package resolver walks the untyped AST, assigns every binding and
// expression a NodeId and a resolved Type, and produces a hir.Module. It
// implements the "direct type-by-inspection" strategy spec.md §9 names as
// canonical (not the fledgling constraint-based unifier kept in
// internal/types/infer.go for comparison only).
package resolver

import (
	"fmt"

	"github.com/aethlang/aethc/internal/ast"
	"github.com/aethlang/aethc/internal/diag"
	"github.com/aethlang/aethc/internal/errcode"
	"github.com/aethlang/aethc/internal/hir"
	"github.com/aethlang/aethc/internal/position"
	"github.com/aethlang/aethc/internal/types"
)

// Resolver holds the per-compilation state: the NodeId counter and the
// scope stack. A fresh Resolver must be used per call to LowerToHIR so
// NodeIds start at a clean baseline.
type Resolver struct {
	nextId uint32
	scopes *scopeStack
	errs   []diag.Diagnostic

	returnTy types.Type // declared (or Unit-defaulted) return type of the function being resolved
}

func newResolver() *Resolver {
	return &Resolver{scopes: newScopeStack()}
}

func (r *Resolver) freshId() hir.NodeId {
	id := r.nextId
	r.nextId++
	return hir.NodeId(id)
}

func (r *Resolver) reportAt(code string, span position.Span, format string, args ...any) {
	r.errs = append(r.errs, diag.WithCode(code, span, fmt.Sprintf(format, args...)))
}

// LowerToHIR is the library entry point named in spec.md §6:
// `lower_to_hir(Module, source) -> (HirModule, [ResolveError])`. The source
// text isn't otherwise needed (the parser already attached spans to every
// AST node) but is accepted to match the documented surface.
func LowerToHIR(mod *ast.Module, _ string) (*hir.Module, []diag.Diagnostic) {
	r := newResolver()
	out := &hir.Module{}

	// Function names are visible module-wide (forward calls and mutual
	// recursion work); globals are not pre-declared and so must textually
	// dominate their use, matching the "dominating scope" invariant
	// (spec.md §3) for a single, sequentially-processed module. This
	// resolves an ambiguity spec.md itself leaves open; see DESIGN.md.
	fnIds := make(map[*ast.Function]hir.NodeId, len(mod.Items))
	for _, item := range mod.Items {
		fn, ok := item.(*ast.Function)
		if !ok {
			continue
		}
		id := r.freshId()
		if r.scopes.insert(fn.Name, &symbol{id: uint32(id), ty: types.TUnit, mutable: false}) {
			r.reportAt(errcode.E001Redeclaration, fn.Span(), "cannot redeclare immutable binding `%s`", fn.Name)
		}
		fnIds[fn] = id
	}

	for _, item := range mod.Items {
		switch it := item.(type) {
		case *ast.Function:
			out.Functions = append(out.Functions, r.resolveFunction(it, fnIds[it]))
		case *ast.GlobalLet:
			out.Globals = append(out.Globals, r.resolveGlobalLet(it))
		}
	}

	return out, r.errs
}

func (r *Resolver) resolveGlobalLet(g *ast.GlobalLet) *hir.GlobalLet {
	expr := r.resolveExpr(g.Expr)
	id := r.freshId()
	if r.scopes.insert(g.Name, &symbol{id: uint32(id), ty: expr.Type(), mutable: g.Mutable}) {
		r.reportAt(errcode.E001Redeclaration, g.Span(), "cannot redeclare immutable binding `%s`", g.Name)
	}
	return &hir.GlobalLet{Id: id, Name: g.Name, Ty: expr.Type(), Expr: expr, Span: g.Span()}
}

func (r *Resolver) resolveFunction(fn *ast.Function, id hir.NodeId) *hir.Function {
	r.scopes.push()
	defer r.scopes.pop()

	params := make([]hir.Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		pty := types.TUnit // unannotated params default to the Unit placeholder, per spec.md §7
		if p.TypeName != "" {
			t, ok := types.ResolveAnnotation(p.TypeName)
			if !ok {
				r.reportAt(errcode.E002UnknownType, p.Span_, "unknown type %q", p.TypeName)
				t = types.TUnit
			}
			pty = t
		}
		pid := r.freshId()
		if r.scopes.insert(p.Name, &symbol{id: uint32(pid), ty: pty, mutable: false}) {
			r.reportAt(errcode.E001Redeclaration, p.Span_, "cannot redeclare immutable binding `%s`", p.Name)
		}
		params = append(params, hir.Param{Id: pid, Name: p.Name, Ty: pty, Span: p.Span_})
	}

	retTy := types.TUnit
	if fn.ReturnType != "" {
		t, ok := types.ResolveAnnotation(fn.ReturnType)
		if !ok {
			r.reportAt(errcode.E002UnknownType, fn.Span(), "unknown type %q", fn.ReturnType)
			t = types.TUnit
		}
		retTy = t
	}

	prevRet := r.returnTy
	r.returnTy = retTy
	body := r.resolveBlock(fn.Body)
	r.returnTy = prevRet

	return &hir.Function{Id: id, Name: fn.Name, Params: params, ReturnTy: retTy, Body: body, Span: fn.Span()}
}

func (r *Resolver) resolveBlock(stmts []ast.Stmt) []hir.Stmt {
	out := make([]hir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, r.resolveStmt(s))
	}
	return out
}

func (r *Resolver) resolveStmt(s ast.Stmt) hir.Stmt {
	switch st := s.(type) {
	case *ast.LetStmt:
		expr := r.resolveExpr(st.Expr)
		id := r.freshId()
		if r.scopes.insert(st.Name, &symbol{id: uint32(id), ty: expr.Type(), mutable: st.Mutable}) {
			r.reportAt(errcode.E001Redeclaration, st.Span(), "cannot redeclare immutable binding `%s`", st.Name)
		}
		return &hir.Let{Id: id, Name: st.Name, Mutable: st.Mutable, Ty: expr.Type(), Expr: expr, Span_: st.Span()}

	case *ast.AssignStmt:
		sym, ok := r.scopes.lookup(st.Name)
		if !ok {
			r.reportAt(errcode.E003UndefinedName, st.Span(), "undefined name `%s`", st.Name)
			expr := r.resolveExpr(st.Expr)
			id := r.freshId()
			return &hir.Assign{Id: id, Name: st.Name, Expr: expr, Span_: st.Span()}
		}
		if !sym.mutable {
			r.reportAt(errcode.E005ReassignImmutable, st.Span(), "cannot reassign immutable binding `%s`", st.Name)
		}
		expr := r.resolveExpr(st.Expr)
		if unified, ok := types.Unify(sym.ty, expr.Type()); ok {
			sym.ty = unified // widening, per spec.md §4.3
		} else {
			r.reportAt(errcode.E004TypeMismatch, st.Span(), "cannot assign %s to variable of type %s", expr.Type(), sym.ty)
		}
		return &hir.Assign{Id: hir.NodeId(sym.id), Name: st.Name, Expr: expr, Span_: st.Span()}

	case *ast.ExprStmt:
		return &hir.ExprStmt{Expr: r.resolveExpr(st.Expr), Span_: st.Span()}

	case *ast.ReturnStmt:
		if st.Expr == nil {
			r.checkReturnCompat(types.TUnit, st.Span())
			return &hir.Return{Expr: nil, Span_: st.Span()}
		}
		expr := r.resolveExpr(st.Expr)
		r.checkReturnCompat(expr.Type(), st.Span())
		return &hir.Return{Expr: expr, Span_: st.Span()}

	default:
		panic(fmt.Sprintf("resolver: unknown stmt type %T", s))
	}
}

// checkReturnCompat validates actual against the enclosing function's
// declared return type: equal, or Int widening to a declared Float, per
// spec.md §4.3.
func (r *Resolver) checkReturnCompat(actual types.Type, span position.Span) {
	if r.returnTy.Equal(actual) {
		return
	}
	if r.returnTy.Kind == types.Float && actual.Kind == types.Int {
		return
	}
	r.reportAt(errcode.E006BadReturnType, span, "expected %s", r.returnTy)
}

func (r *Resolver) resolveExpr(e ast.Expr) hir.Expr {
	switch ex := e.(type) {
	case *ast.Ident:
		return r.resolveIdent(ex)
	case *ast.Literal:
		return r.resolveLiteral(ex)
	case *ast.Call:
		return r.resolveCall(ex)
	case *ast.Binary:
		return r.resolveBinary(ex)
	case *ast.Unary:
		return r.resolveUnary(ex)
	case *ast.Borrow:
		return r.resolveBorrow(ex)
	default:
		panic(fmt.Sprintf("resolver: unknown expr type %T", e))
	}
}

func (r *Resolver) resolveBorrow(b *ast.Borrow) hir.Expr {
	ident, ok := b.Target.(*ast.Ident)
	if !ok {
		r.reportAt(errcode.E008BadBorrowTarget, b.Span(), "cannot borrow a non-variable expression")
		return &hir.Literal{Kind: hir.LitUnit, Ty: types.TUnit, Span_: b.Span()}
	}
	sym, ok := r.scopes.lookup(ident.Name)
	if !ok {
		r.reportAt(errcode.E003UndefinedName, ident.Span(), "undefined name `%s`", ident.Name)
		return &hir.Literal{Kind: hir.LitUnit, Ty: types.TUnit, Span_: b.Span()}
	}
	inner := sym.ty
	ty := types.Type{Kind: types.Ref, Mutable: b.Mutable, Inner: &inner}
	return &hir.Borrow{TargetId: hir.NodeId(sym.id), TargetName: ident.Name, Mutable: b.Mutable, Ty: ty, Span_: b.Span()}
}

func (r *Resolver) resolveIdent(id *ast.Ident) hir.Expr {
	if id.Name == "print" {
		return &hir.Builtin{Kind: hir.BuiltinPrint, Ty: types.TUnit, Span_: id.Span()}
	}
	sym, ok := r.scopes.lookup(id.Name)
	if !ok {
		r.reportAt(errcode.E003UndefinedName, id.Span(), "undefined name `%s`", id.Name)
		return &hir.Literal{Kind: hir.LitUnit, Ty: types.TUnit, Span_: id.Span()} // placeholder, per spec.md §7
	}
	return &hir.Ident{Id: hir.NodeId(sym.id), Name: id.Name, Ty: sym.ty, Span_: id.Span()}
}

func (r *Resolver) resolveLiteral(l *ast.Literal) hir.Expr {
	switch l.Kind {
	case ast.LitInt:
		return &hir.Literal{Kind: hir.LitInt, IntVal: l.IntVal, Ty: types.TInt, Span_: l.Span()}
	case ast.LitFloat:
		return &hir.Literal{Kind: hir.LitFloat, FloatVal: l.FloatVal, Ty: types.TFloat, Span_: l.Span()}
	case ast.LitBool:
		return &hir.Literal{Kind: hir.LitBool, BoolVal: l.BoolVal, Ty: types.TBool, Span_: l.Span()}
	case ast.LitStr:
		return &hir.Literal{Kind: hir.LitStr, StrVal: l.StrVal, Ty: types.TStr, Span_: l.Span()}
	default:
		return &hir.Literal{Kind: hir.LitUnit, Ty: types.TUnit, Span_: l.Span()}
	}
}

func (r *Resolver) resolveCall(c *ast.Call) hir.Expr {
	callee := r.resolveExpr(c.Callee)

	args := make([]hir.Expr, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, r.resolveExpr(a))
	}

	if b, ok := callee.(*hir.Builtin); ok && b.Kind == hir.BuiltinPrint {
		if len(args) != 1 || (args[0].Type().Kind != types.Int && args[0].Type().Kind != types.Str) {
			r.reportAt(errcode.E007BadBuiltinUse, c.Span(), "print expects exactly one argument of type Int or Str")
		}
	}

	// Only a plain name or the print builtin names a real callee: this core
	// never gives a Call (or any other compound expression) a function
	// type (§9), so something like `g()()` or `1()` has no known callee
	// and must be rejected here rather than lowered into a placeholder name.
	switch callee.(type) {
	case *hir.Ident, *hir.Builtin:
	default:
		r.reportAt(errcode.E009NotCallable, c.Span(), "callee is not callable")
	}

	return &hir.Call{Callee: callee, Args: args, Ty: types.TUnit, Span_: c.Span()}
}

func (r *Resolver) resolveUnary(u *ast.Unary) hir.Expr {
	rhs := r.resolveExpr(u.RHS)

	switch u.Op {
	case ast.OpNeg:
		if rhs.Type().Kind != types.Int && rhs.Type().Kind != types.Float {
			r.reportAt(errcode.E004TypeMismatch, u.Span(), "cannot negate %s", rhs.Type())
			return &hir.Unary{Op: hir.OpNeg, RHS: rhs, Ty: types.TUnit, Span_: u.Span()}
		}
		return &hir.Unary{Op: hir.OpNeg, RHS: rhs, Ty: rhs.Type(), Span_: u.Span()}
	case ast.OpNot:
		if rhs.Type().Kind != types.Bool {
			r.reportAt(errcode.E004TypeMismatch, u.Span(), "cannot apply ! to %s", rhs.Type())
			return &hir.Unary{Op: hir.OpNot, RHS: rhs, Ty: types.TBool, Span_: u.Span()}
		}
		return &hir.Unary{Op: hir.OpNot, RHS: rhs, Ty: types.TBool, Span_: u.Span()}
	default:
		panic("resolver: unknown unary operator")
	}
}

var binOpToHir = map[ast.BinaryOp]hir.BinOpKind{
	ast.OpAdd: hir.OpAdd, ast.OpSub: hir.OpSub, ast.OpMul: hir.OpMul,
	ast.OpDiv: hir.OpDiv, ast.OpMod: hir.OpMod,
	ast.OpEq: hir.OpEq, ast.OpNe: hir.OpNe,
	ast.OpLt: hir.OpLt, ast.OpLe: hir.OpLe, ast.OpGt: hir.OpGt, ast.OpGe: hir.OpGe,
	ast.OpAnd: hir.OpAnd, ast.OpOr: hir.OpOr,
}

func (r *Resolver) resolveBinary(b *ast.Binary) hir.Expr {
	lhs := r.resolveExpr(b.LHS)
	rhs := r.resolveExpr(b.RHS)
	op := binOpToHir[b.Op]

	switch b.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		unified, ok := types.Unify(lhs.Type(), rhs.Type())
		if !ok {
			r.reportAt(errcode.E004TypeMismatch, b.Span(), "cannot apply %s to types %s and %s", b.Op, lhs.Type(), rhs.Type())
			unified = types.TUnit
		}
		return &hir.Binary{Op: op, LHS: lhs, RHS: rhs, Ty: unified, Span_: b.Span()}

	case ast.OpEq, ast.OpNe:
		if _, ok := types.Unify(lhs.Type(), rhs.Type()); !ok {
			r.reportAt(errcode.E004TypeMismatch, b.Span(), "cannot compare types %s and %s", lhs.Type(), rhs.Type())
		}
		return &hir.Binary{Op: op, LHS: lhs, RHS: rhs, Ty: types.TBool, Span_: b.Span()}

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		unified, ok := types.Unify(lhs.Type(), rhs.Type())
		if !ok || (unified.Kind != types.Int && unified.Kind != types.Float) {
			r.reportAt(errcode.E004TypeMismatch, b.Span(), "cannot order types %s and %s", lhs.Type(), rhs.Type())
		}
		return &hir.Binary{Op: op, LHS: lhs, RHS: rhs, Ty: types.TBool, Span_: b.Span()}

	case ast.OpAnd, ast.OpOr:
		if lhs.Type().Kind != types.Bool || rhs.Type().Kind != types.Bool {
			r.reportAt(errcode.E004TypeMismatch, b.Span(), "cannot apply %s to non-Bool operands", b.Op)
		}
		return &hir.Binary{Op: op, LHS: lhs, RHS: rhs, Ty: types.TBool, Span_: b.Span()}

	default:
		panic("resolver: unknown binary operator")
	}
}
