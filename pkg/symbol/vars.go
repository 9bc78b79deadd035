package symbol

import (
	"slices"

	"github.com/vito/sysf/pkg/ast"
)

// VarSet represents a set of variable names
type VarSet map[ast.Identifier]bool

// NewVarSet creates a new VarSet
func NewVarSet(names ...ast.Identifier) VarSet {
	set := make(VarSet, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Union returns the union of two VarSets
func (vs VarSet) Union(other VarSet) VarSet {
	result := make(VarSet, len(vs)+len(other))
	for name := range vs {
		result[name] = true
	}
	for name := range other {
		result[name] = true
	}
	return result
}

// Contains checks if a name is in the set
func (vs VarSet) Contains(name ast.Identifier) bool {
	return vs[name]
}

// Add adds a name to the set
func (vs VarSet) Add(name ast.Identifier) {
	vs[name] = true
}

// Remove removes a name from the set
func (vs VarSet) Remove(name ast.Identifier) {
	delete(vs, name)
}

// Sorted returns the names in the set in lexical order
func (vs VarSet) Sorted() []ast.Identifier {
	result := make([]ast.Identifier, 0, len(vs))
	for name := range vs {
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}
