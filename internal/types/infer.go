package types

// InferCtx is a constraint-based unifier kept alongside the resolver's
// canonical direct (type-by-inspection) checker, mirroring
// aethc_core/src/infer_ctx.rs in the original implementation. It is a
// preserved alternative strategy, not the one the resolver calls: per
// spec.md §9, the direct resolver typing is canonical, and this worklist
// solver is a future-direction artifact kept only for comparison.
type InferCtx struct {
	vars        map[int]Type
	constraints []constraint
	next        int
}

type constraint struct {
	a, b int // type-variable ids
}

// NewInferCtx creates an empty constraint context.
func NewInferCtx() *InferCtx {
	return &InferCtx{vars: make(map[int]Type)}
}

// Fresh allocates a new type variable id with no bound type.
func (c *InferCtx) Fresh() int {
	id := c.next
	c.next++
	return id
}

// Bind records that variable id has concrete type t.
func (c *InferCtx) Bind(id int, t Type) {
	c.vars[id] = t
}

// Equate records that two type variables must unify; resolved by the
// worklist in Solve.
func (c *InferCtx) Equate(a, b int) {
	c.constraints = append(c.constraints, constraint{a, b})
}

// Solve runs a worklist over the recorded equality constraints, unifying
// any pair whose variables are both already bound. It never backtracks and
// never introduces defaulting, so it only resolves the trivial cases the
// canonical resolver already handles directly — it is not wired into the
// pipeline.
func (c *InferCtx) Solve() bool {
	worklist := append([]constraint(nil), c.constraints...)
	for len(worklist) > 0 {
		cs := worklist[0]
		worklist = worklist[1:]

		ta, oka := c.vars[cs.a]
		tb, okb := c.vars[cs.b]
		if !oka || !okb {
			continue // under-constrained; left unresolved, as in the original
		}
		unified, ok := Unify(ta, tb)
		if !ok {
			return false
		}
		c.vars[cs.a] = unified
		c.vars[cs.b] = unified
	}
	return true
}

// Lookup returns the type currently bound to a variable, if any.
func (c *InferCtx) Lookup(id int) (Type, bool) {
	t, ok := c.vars[id]
	return t, ok
}
