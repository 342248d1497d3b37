// Package errcode is the stable error-code registry, grounded in the
// teacher's internal/errors.StandardError{Category,Code,Message} shape.
// spec.md §4.4 names two: E010 (borrow/mutability violations) and E011
// (move/use violations). The rest are this expansion's own, kept stable
// once assigned so external tooling can match on them.
package errcode

const (
	// Borrow checker, per spec.md §4.4.
	E010SecondMutBorrow     = "E010" // a second &mut taken while one is live
	E010AssignWhileBorrowed = "E010" // reassignment while a live &mut exists
	E011UseAfterMove        = "E011" // a moved variable is referenced again
	E011DoubleMove          = "E011" // a move applied to an already-moved variable

	// Resolver.
	E001Redeclaration    = "E001" // cannot redeclare immutable binding
	E002UnknownType      = "E002" // unknown type in an annotation
	E003UndefinedName    = "E003" // identifier not found in any scope
	E004TypeMismatch     = "E004" // unify failure / incompatible operand types
	E005ReassignImmutable = "E005" // assignment to a non-mut binding
	E006BadReturnType    = "E006" // return expression doesn't match declared type
	E007BadBuiltinUse    = "E007" // wrong arity/type for a builtin call
	E008BadBorrowTarget  = "E008" // `&`/`&mut` applied to something other than a variable
	E009NotCallable      = "E009" // call expression whose callee isn't a name or builtin
)
