// Package types defines aethc's closed type sum and the numeric-promotion
// unifier used by the resolver.
package types

import "fmt"

// Kind discriminates the type sum described in spec.md §3.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	Str
	Unit
	Custom // reserved for future phases; carries Name
	Ref    // type of a `&`/`&mut` borrow expression; carries Inner/Mutable/Lifetime
)

// Type is a closed, structurally-equal value type. Custom is reserved; Ref
// is produced only for borrow expressions, and Unify accepts a pair of Refs
// only when they are structurally equal.
type Type struct {
	Kind Kind

	// Custom
	Name string

	// Ref
	Mutable  bool
	Inner    *Type
	Lifetime string // "" if unspecified
}

func (t Type) String() string {
	switch t.Kind {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Str:
		return "Str"
	case Unit:
		return "Unit"
	case Custom:
		return t.Name
	case Ref:
		m := ""
		if t.Mutable {
			m = "mut "
		}
		if t.Inner != nil {
			return fmt.Sprintf("&%s%s", m, t.Inner)
		}
		return fmt.Sprintf("&%s?", m)
	default:
		return "?"
	}
}

// Equal reports structural equality. Custom types compare by name; Ref
// types compare mutability and inner type.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Custom:
		return t.Name == other.Name
	case Ref:
		if t.Mutable != other.Mutable {
			return false
		}
		if t.Inner == nil || other.Inner == nil {
			return t.Inner == other.Inner
		}
		return t.Inner.Equal(*other.Inner)
	default:
		return true
	}
}

// IsCopy reports whether values of t are copy types per spec.md §4.4:
// Int, Float, Bool, and Unit are copy; everything else (including Str) is
// move.
func (t Type) IsCopy() bool {
	switch t.Kind {
	case Int, Float, Bool, Unit:
		return true
	default:
		return false
	}
}

var (
	TInt   = Type{Kind: Int}
	TFloat = Type{Kind: Float}
	TBool  = Type{Kind: Bool}
	TStr   = Type{Kind: Str}
	TUnit  = Type{Kind: Unit}
)

// Unify is the fixed binary operation on primitive types returning their
// common supertype under numeric widening. It is reflexive on each
// primitive, and (Int,Float)/(Float,Int) -> Float; everything else fails.
// Commutative and idempotent, per spec.md §8 invariant 7.
func Unify(a, b Type) (Type, bool) {
	if a.Equal(b) {
		return a, true
	}
	if a.Kind == Int && b.Kind == Float {
		return TFloat, true
	}
	if a.Kind == Float && b.Kind == Int {
		return TFloat, true
	}
	return Type{}, false
}

// ResolveAnnotation maps a primitive type-annotation name to a Type, per
// spec.md §4.3: Int/int, Float/float, Bool/bool, Str/String. Anything else
// is unknown.
func ResolveAnnotation(name string) (Type, bool) {
	switch name {
	case "Int", "int":
		return TInt, true
	case "Float", "float":
		return TFloat, true
	case "Bool", "bool":
		return TBool, true
	case "Str", "String":
		return TStr, true
	default:
		return Type{}, false
	}
}
