package resolver

import "github.com/aethlang/aethc/internal/types"

// symbol is a single name binding tracked by the scope stack.
type symbol struct {
	id      uint32
	ty      types.Type
	mutable bool
}

// scopeStack is a stack of name->symbol maps. The module (outermost) scope
// is always present; push/pop bracket function bodies, per spec.md §4.3.
type scopeStack struct {
	scopes []map[string]*symbol
}

func newScopeStack() *scopeStack {
	s := &scopeStack{}
	s.push() // module scope
	return s
}

func (s *scopeStack) push() {
	s.scopes = append(s.scopes, make(map[string]*symbol))
}

func (s *scopeStack) pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *scopeStack) current() map[string]*symbol {
	return s.scopes[len(s.scopes)-1]
}

// lookup scans innermost to outermost.
func (s *scopeStack) lookup(name string) (*symbol, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if sym, ok := s.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// insert applies the canonical binding rule from spec.md §4.3: if a name
// already exists in the *current* scope and was declared mut, the new
// binding replaces it (shadowing allowed); otherwise a redeclaration error
// is reported by the caller and the new binding still replaces the old one,
// so later statements keep checking against the newest binding.
func (s *scopeStack) insert(name string, sym *symbol) (redeclaredImmutable bool) {
	cur := s.current()
	if existing, ok := cur[name]; ok && !existing.mutable {
		cur[name] = sym
		return true
	}
	cur[name] = sym
	return false
}
