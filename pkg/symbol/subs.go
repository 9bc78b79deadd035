package symbol

import "github.com/vito/sysf/pkg/ast"

// Subs represents a simultaneous substitution of types for type variables
type Subs map[ast.Identifier]ast.Type

// NewSubs creates a new substitution
func NewSubs() Subs {
	return make(Subs)
}

// Clone creates a copy of the substitution
func (s Subs) Clone() Subs {
	result := make(Subs, len(s))
	for name, t := range s {
		result[name] = t
	}
	return result
}

// Add adds a substitution mapping and returns the updated substitution
func (s Subs) Add(name ast.Identifier, t ast.Type) Subs {
	s[name] = t
	return s
}

// Get gets the type substituted for a variable
func (s Subs) Get(name ast.Identifier) (ast.Type, bool) {
	t, exists := s[name]
	return t, exists
}

// Without returns the substitution with name unmapped, as seen beneath a
// binder of name. The receiver is never modified.
func (s Subs) Without(name ast.Identifier) Subs {
	if _, exists := s[name]; !exists {
		return s
	}
	result := s.Clone()
	delete(result, name)
	return result
}

// Restrict returns the mappings for the variables in vars.
func (s Subs) Restrict(vars VarSet) Subs {
	result := make(Subs, len(s))
	for name, t := range s {
		if vars.Contains(name) {
			result[name] = t
		}
	}
	return result
}

// Domain returns the substituted variables
func (s Subs) Domain() VarSet {
	set := make(VarSet, len(s))
	for name := range s {
		set.Add(name)
	}
	return set
}

// FreeVars returns the type variables occurring free in the range
func (s Subs) FreeVars() VarSet {
	set := NewVarSet()
	for _, t := range s {
		for name := range FreeTypeVars(t) {
			set.Add(name)
		}
	}
	return set
}

// TermSubs represents a simultaneous substitution of terms for term variables
type TermSubs map[ast.Identifier]ast.Term

// NewTermSubs creates a new term substitution
func NewTermSubs() TermSubs {
	return make(TermSubs)
}

// Clone creates a copy of the substitution
func (s TermSubs) Clone() TermSubs {
	result := make(TermSubs, len(s))
	for name, e := range s {
		result[name] = e
	}
	return result
}

// Add adds a substitution mapping and returns the updated substitution
func (s TermSubs) Add(name ast.Identifier, e ast.Term) TermSubs {
	s[name] = e
	return s
}

// Get gets the term substituted for a variable
func (s TermSubs) Get(name ast.Identifier) (ast.Term, bool) {
	e, exists := s[name]
	return e, exists
}

// Without returns the substitution with name unmapped. The receiver is never
// modified.
func (s TermSubs) Without(name ast.Identifier) TermSubs {
	if _, exists := s[name]; !exists {
		return s
	}
	result := s.Clone()
	delete(result, name)
	return result
}

// Restrict returns the mappings for the variables in vars.
func (s TermSubs) Restrict(vars VarSet) TermSubs {
	result := make(TermSubs, len(s))
	for name, e := range s {
		if vars.Contains(name) {
			result[name] = e
		}
	}
	return result
}

// Domain returns the substituted variables
func (s TermSubs) Domain() VarSet {
	set := make(VarSet, len(s))
	for name := range s {
		set.Add(name)
	}
	return set
}

// FreeVars returns the term variables occurring free in the range
func (s TermSubs) FreeVars() VarSet {
	set := NewVarSet()
	for _, e := range s {
		for name := range FreeTermVars(e) {
			set.Add(name)
		}
	}
	return set
}

// FreeTypeVars returns the type variables occurring free in the range
func (s TermSubs) FreeTypeVars() VarSet {
	set := NewVarSet()
	for _, e := range s {
		for name := range FreeTypeVarsInTerm(e) {
			set.Add(name)
		}
	}
	return set
}
