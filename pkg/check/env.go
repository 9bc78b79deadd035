package check

import (
	"slices"

	"github.com/vito/sysf/pkg/ast"
)

// Env represents a typing context
type Env interface {
	TypeOf(name ast.Identifier) (ast.Type, bool)
	Extend(name ast.Identifier, t ast.Type) Env
	Names() []ast.Identifier
}

// SimpleEnv is a simple implementation of Env. Extending it never modifies
// the receiver.
type SimpleEnv struct {
	types map[ast.Identifier]ast.Type
}

var _ Env = (*SimpleEnv)(nil)

// NewSimpleEnv creates a new SimpleEnv
func NewSimpleEnv() *SimpleEnv {
	return &SimpleEnv{
		types: make(map[ast.Identifier]ast.Type),
	}
}

// TypeOf returns the type bound to a name
func (env *SimpleEnv) TypeOf(name ast.Identifier) (ast.Type, bool) {
	t, exists := env.types[name]
	return t, exists
}

// Extend returns a copy of the environment with name bound to t, shadowing
// any earlier binding
func (env *SimpleEnv) Extend(name ast.Identifier, t ast.Type) Env {
	newEnv := &SimpleEnv{
		types: make(map[ast.Identifier]ast.Type, len(env.types)+1),
	}
	for n, existing := range env.types {
		newEnv.types[n] = existing
	}
	newEnv.types[name] = t
	return newEnv
}

// Names returns the bound names in lexical order
func (env *SimpleEnv) Names() []ast.Identifier {
	names := make([]ast.Identifier, 0, len(env.types))
	for name := range env.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
