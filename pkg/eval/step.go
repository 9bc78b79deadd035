// Package eval reduces terms by small-step, call-by-value operational
// semantics.
//
// Reduction stops at weak-head normal form: pairs, injections, folds and
// exports are values regardless of their components, which are only reduced
// once something projects, cases on, unfolds or imports them. A final result
// may therefore still contain redexes beneath its outermost constructor.
//
// Types are erased at run time. Type application, unfold and import never
// substitute types; annotations are carried along untouched.
package eval

import (
	"fmt"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/symbol"
)

// Stuck is the panic value raised when a term that is not a value cannot
// step, such as projecting from a number or dividing by zero. Terms that
// pass type checking never get stuck, apart from division by zero.
type Stuck struct {
	Rule string
	Term ast.Term
}

func (s *Stuck) Error() string {
	return fmt.Sprintf("stuck in %s: %s", s.Rule, s.Term)
}

func stuck(rule string, e ast.Term) {
	panic(&Stuck{Rule: rule, Term: e})
}

// IsValue reports whether e is irreducible.
func IsValue(e ast.Term) bool {
	switch e.(type) {
	case ast.Num, ast.True, ast.False, ast.Unit,
		ast.Lam, ast.Pair, ast.Inject, ast.TyLam, ast.Fold, ast.Export:
		return true
	default:
		return false
	}
}

// Step performs one reduction. It returns false when e is already a value.
//
// Subterms are reduced left to right; the first one that steps is replaced
// in a copy of e.
func Step(e ast.Term) (ast.Term, bool) {
	switch e := e.(type) {
	case ast.Num, ast.True, ast.False, ast.Unit,
		ast.Lam, ast.Pair, ast.Inject, ast.TyLam, ast.Fold, ast.Export:
		return e, false

	case ast.Addop:
		if next, ok := Step(e.Left); ok {
			e.Left = next
			return e, true
		}
		if next, ok := Step(e.Right); ok {
			e.Right = next
			return e, true
		}
		l, r := num("arithmetic", e.Left), num("arithmetic", e.Right)
		switch e.Op {
		case ast.Add:
			return ast.Num{Value: l + r}, true
		case ast.Sub:
			return ast.Num{Value: l - r}, true
		}

	case ast.Mulop:
		if next, ok := Step(e.Left); ok {
			e.Left = next
			return e, true
		}
		if next, ok := Step(e.Right); ok {
			e.Right = next
			return e, true
		}
		l, r := num("arithmetic", e.Left), num("arithmetic", e.Right)
		switch e.Op {
		case ast.Mul:
			return ast.Num{Value: l * r}, true
		case ast.Div:
			if r == 0 {
				stuck("division by zero", e)
			}
			return ast.Num{Value: l / r}, true
		}

	case ast.Relop:
		if next, ok := Step(e.Left); ok {
			e.Left = next
			return e, true
		}
		if next, ok := Step(e.Right); ok {
			e.Right = next
			return e, true
		}
		l, r := num("comparison", e.Left), num("comparison", e.Right)
		switch e.Op {
		case ast.Lt:
			return ast.Bool(l < r), true
		case ast.Gt:
			return ast.Bool(l > r), true
		case ast.Eq:
			return ast.Bool(l == r), true
		}

	case ast.And:
		if next, ok := Step(e.Left); ok {
			e.Left = next
			return e, true
		}
		if next, ok := Step(e.Right); ok {
			e.Right = next
			return e, true
		}
		return ast.Bool(boolean("&&", e.Left) && boolean("&&", e.Right)), true

	case ast.Or:
		if next, ok := Step(e.Left); ok {
			e.Left = next
			return e, true
		}
		if next, ok := Step(e.Right); ok {
			e.Right = next
			return e, true
		}
		return ast.Bool(boolean("||", e.Left) || boolean("||", e.Right)), true

	case ast.If:
		if next, ok := Step(e.Cond); ok {
			e.Cond = next
			return e, true
		}
		if boolean("if", e.Cond) {
			return e.Then, true
		}
		return e.Else, true

	case ast.Var:
		stuck("free variable", e)

	case ast.App:
		if next, ok := Step(e.Fn); ok {
			e.Fn = next
			return e, true
		}
		lam, ok := e.Fn.(ast.Lam)
		if !ok {
			stuck("application", e)
		}
		return symbol.SubstTerm(lam.Body, lam.Bound, e.Arg), true

	case ast.Project:
		if next, ok := Step(e.Term); ok {
			e.Term = next
			return e, true
		}
		pair, ok := e.Term.(ast.Pair)
		if !ok {
			stuck("projection", e)
		}
		if e.Side == ast.Left {
			return pair.Left, true
		}
		return pair.Right, true

	case ast.Case:
		if next, ok := Step(e.Scrutinee); ok {
			e.Scrutinee = next
			return e, true
		}
		inj, ok := e.Scrutinee.(ast.Inject)
		if !ok {
			stuck("case", e)
		}
		if inj.Side == ast.Left {
			return symbol.SubstTerm(e.LeftArm, e.LeftBound, inj.Term), true
		}
		return symbol.SubstTerm(e.RightArm, e.RightBound, inj.Term), true

	case ast.Fix:
		return symbol.SubstTerm(e.Body, e.Bound, e), true

	case ast.TyApp:
		if next, ok := Step(e.Term); ok {
			e.Term = next
			return e, true
		}
		tylam, ok := e.Term.(ast.TyLam)
		if !ok {
			stuck("type application", e)
		}
		return tylam.Body, true

	case ast.Unfold:
		if next, ok := Step(e.Term); ok {
			e.Term = next
			return e, true
		}
		fold, ok := e.Term.(ast.Fold)
		if !ok {
			stuck("unfold", e)
		}
		return fold.Term, true

	case ast.Import:
		if next, ok := Step(e.Module); ok {
			e.Module = next
			return e, true
		}
		export, ok := e.Module.(ast.Export)
		if !ok {
			stuck("import", e)
		}
		return symbol.SubstTerm(e.Body, e.ValueBound, export.Term), true
	}

	panic(fmt.Sprintf("unknown term form %T", e))
}

func num(rule string, e ast.Term) int32 {
	n, ok := e.(ast.Num)
	if !ok {
		stuck(rule, e)
	}
	return n.Value
}

func boolean(rule string, e ast.Term) bool {
	switch e.(type) {
	case ast.True:
		return true
	case ast.False:
		return false
	}
	stuck(rule, e)
	return false
}
