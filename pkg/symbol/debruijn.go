package symbol

import (
	"maps"
	"strconv"

	"github.com/vito/sysf/pkg/ast"
)

// Placeholder replaces every binder name in de Bruijn form.
const Placeholder ast.Identifier = "_"

// scope tracks the binders enclosing a point in one namespace. Each bound
// name maps to the depth at which it was bound; the innermost binder of a
// name wins.
type scope struct {
	depth  int
	levels map[ast.Identifier]int
}

func (s scope) bind(name ast.Identifier) scope {
	levels := make(map[ast.Identifier]int, len(s.levels)+1)
	maps.Copy(levels, s.levels)
	levels[name] = s.depth
	return scope{depth: s.depth + 1, levels: levels}
}

func (s scope) resolve(name ast.Identifier) ast.Identifier {
	level, bound := s.levels[name]
	if !bound {
		return name
	}
	return ast.Identifier(strconv.Itoa(s.depth - level - 1))
}

// DeBruijnType rewrites every bound type variable to the number of binders
// between it and its own binder, and erases binder names. Free variables
// are left alone.
func DeBruijnType(t ast.Type) ast.Type {
	return deBruijnType(t, scope{})
}

func deBruijnType(t ast.Type, types scope) ast.Type {
	switch t := t.(type) {
	case ast.TNum, ast.TBool, ast.TUnit:
		return t
	case ast.TVar:
		return ast.TVar{Name: types.resolve(t.Name)}
	case ast.TFn:
		return ast.TFn{Arg: deBruijnType(t.Arg, types), Ret: deBruijnType(t.Ret, types)}
	case ast.TProduct:
		return ast.TProduct{Left: deBruijnType(t.Left, types), Right: deBruijnType(t.Right, types)}
	case ast.TSum:
		return ast.TSum{Left: deBruijnType(t.Left, types), Right: deBruijnType(t.Right, types)}
	case ast.Quantifier:
		bound, body := t.Binding()
		return ast.Rebind(t, Placeholder, deBruijnType(body, types.bind(bound)))
	default:
		panic("unknown type form")
	}
}

// DeBruijnTerm is DeBruijnType for terms. Term and type variables are
// numbered independently, and the annotations inside e are canonicalized
// too.
func DeBruijnTerm(e ast.Term) ast.Term {
	c := canonicalizer{}
	return c.term(e)
}

type canonicalizer struct {
	terms scope
	types scope
}

func (c canonicalizer) typ(t ast.Type) ast.Type {
	return deBruijnType(t, c.types)
}

func (c canonicalizer) bindTerm(name ast.Identifier) canonicalizer {
	c.terms = c.terms.bind(name)
	return c
}

func (c canonicalizer) bindType(name ast.Identifier) canonicalizer {
	c.types = c.types.bind(name)
	return c
}

func (c canonicalizer) term(e ast.Term) ast.Term {
	switch e := e.(type) {
	case ast.Num, ast.True, ast.False, ast.Unit:
		return e
	case ast.Var:
		return ast.Var{Name: c.terms.resolve(e.Name)}
	case ast.Addop:
		return ast.Addop{Op: e.Op, Left: c.term(e.Left), Right: c.term(e.Right)}
	case ast.Mulop:
		return ast.Mulop{Op: e.Op, Left: c.term(e.Left), Right: c.term(e.Right)}
	case ast.Relop:
		return ast.Relop{Op: e.Op, Left: c.term(e.Left), Right: c.term(e.Right)}
	case ast.And:
		return ast.And{Left: c.term(e.Left), Right: c.term(e.Right)}
	case ast.Or:
		return ast.Or{Left: c.term(e.Left), Right: c.term(e.Right)}
	case ast.If:
		return ast.If{Cond: c.term(e.Cond), Then: c.term(e.Then), Else: c.term(e.Else)}
	case ast.Lam:
		return ast.Lam{
			Bound: Placeholder,
			Annot: c.typ(e.Annot),
			Body:  c.bindTerm(e.Bound).term(e.Body),
		}
	case ast.Fix:
		return ast.Fix{
			Bound: Placeholder,
			Annot: c.typ(e.Annot),
			Body:  c.bindTerm(e.Bound).term(e.Body),
		}
	case ast.App:
		return ast.App{Fn: c.term(e.Fn), Arg: c.term(e.Arg)}
	case ast.Pair:
		return ast.Pair{Left: c.term(e.Left), Right: c.term(e.Right)}
	case ast.Project:
		return ast.Project{Term: c.term(e.Term), Side: e.Side}
	case ast.Inject:
		return ast.Inject{Term: c.term(e.Term), Side: e.Side, Sum: c.typ(e.Sum)}
	case ast.Case:
		return ast.Case{
			Scrutinee:  c.term(e.Scrutinee),
			LeftBound:  Placeholder,
			LeftArm:    c.bindTerm(e.LeftBound).term(e.LeftArm),
			RightBound: Placeholder,
			RightArm:   c.bindTerm(e.RightBound).term(e.RightArm),
		}
	case ast.TyLam:
		return ast.TyLam{Bound: Placeholder, Body: c.bindType(e.Bound).term(e.Body)}
	case ast.TyApp:
		return ast.TyApp{Term: c.term(e.Term), Arg: c.typ(e.Arg)}
	case ast.Fold:
		return ast.Fold{Term: c.term(e.Term), Rec: c.typ(e.Rec)}
	case ast.Unfold:
		return ast.Unfold{Term: c.term(e.Term)}
	case ast.Export:
		return ast.Export{Term: c.term(e.Term), Witness: c.typ(e.Witness), Exists: c.typ(e.Exists)}
	case ast.Import:
		return ast.Import{
			ValueBound: Placeholder,
			TypeBound:  Placeholder,
			Module:     c.term(e.Module),
			Body:       c.bindTerm(e.ValueBound).bindType(e.TypeBound).term(e.Body),
		}
	default:
		panic("unknown term form")
	}
}
