package check

import (
	"fmt"

	"github.com/vito/sysf/pkg/ast"
)

// ErrorKind classifies type errors.
type ErrorKind int

const (
	// FreeVariable is a reference to a name not in scope.
	FreeVariable ErrorKind = iota
	// Mismatch is a subterm whose type differs from the one its context
	// requires.
	Mismatch
	// WrongShape is an eliminator applied to a term of the wrong type
	// constructor, like projecting from a function.
	WrongShape
	// BadAnnotation is a fold, injection or export annotated with a type of
	// the wrong constructor.
	BadAnnotation
)

var (
	ErrFreeVariable  = &TypeError{Kind: FreeVariable}
	ErrMismatch      = &TypeError{Kind: Mismatch}
	ErrWrongShape    = &TypeError{Kind: WrongShape}
	ErrBadAnnotation = &TypeError{Kind: BadAnnotation}
)

// TypeError is the failure of a single typing rule.
type TypeError struct {
	Kind ErrorKind
	// Form labels the syntactic form whose rule failed, like "+" or "case".
	Form string
	// Expected names the shape the rule required, like "a function".
	Expected string
	// Name is the offending variable, for FreeVariable.
	Name ast.Identifier
	// Types holds the type found, and for Mismatch the type expected first.
	Types []ast.Type
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case FreeVariable:
		return fmt.Sprintf("free variable: %s", e.Name)
	case Mismatch:
		return fmt.Sprintf("type mismatch in %s: expected %s, found %s", e.Form, e.Types[0], e.Types[1])
	case WrongShape:
		return fmt.Sprintf("%s expects %s type, found %s", e.Form, e.Expected, e.Types[0])
	case BadAnnotation:
		return fmt.Sprintf("%s annotation %s is not %s type", e.Form, e.Types[0], e.Expected)
	default:
		return "type error"
	}
}

// Is matches the sentinel errors by kind, so errors.Is(err, ErrMismatch)
// holds for any mismatch.
func (e *TypeError) Is(target error) bool {
	t, ok := target.(*TypeError)
	return ok && t.Kind == e.Kind
}

func mismatch(form string, expected, found ast.Type) *TypeError {
	return &TypeError{Kind: Mismatch, Form: form, Types: []ast.Type{expected, found}}
}

func wrongShape(form, shape string, found ast.Type) *TypeError {
	return &TypeError{Kind: WrongShape, Form: form, Expected: shape, Types: []ast.Type{found}}
}

func badAnnotation(form, shape string, annot ast.Type) *TypeError {
	return &TypeError{Kind: BadAnnotation, Form: form, Expected: shape, Types: []ast.Type{annot}}
}
