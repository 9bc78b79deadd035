// Package ast defines the two trees the language is made of: types and
// terms.
//
// Every node is a comparable value struct, so trees are immutable values and
// == is plain structural equality. Structural equality ignores nothing, bound
// names included; use the symbol package to compare up to renaming.
package ast

// Identifier names a variable, either a term variable or a type variable,
// at its binding site or at a use.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Side selects a component of a product or sum.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		panic("invalid side")
	}
}

// Node is either a Type or a Term.
type Node interface {
	String() string
	node()
}
