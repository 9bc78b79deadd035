package symbol

import "github.com/vito/sysf/pkg/ast"

// SubstType replaces every free occurrence of the type variable name in t
// with replacement.
func SubstType(t ast.Type, name ast.Identifier, replacement ast.Type) ast.Type {
	return SubstTypes(t, NewSubs().Add(name, replacement))
}

// SubstTypes applies subs to t simultaneously.
//
// A binder is renamed when a replacement reaching into its scope mentions
// its name, so bound names in the result may differ from t's. Compare
// results with AlphaEquivTypes. Scopes that no mapping reaches are returned
// unchanged.
func SubstTypes(t ast.Type, subs Subs) ast.Type {
	if len(subs) == 0 {
		return t
	}
	switch t := t.(type) {
	case ast.TNum, ast.TBool, ast.TUnit:
		return t
	case ast.TVar:
		if replacement, ok := subs.Get(t.Name); ok {
			return replacement
		}
		return t
	case ast.TFn:
		return ast.TFn{Arg: SubstTypes(t.Arg, subs), Ret: SubstTypes(t.Ret, subs)}
	case ast.TProduct:
		return ast.TProduct{Left: SubstTypes(t.Left, subs), Right: SubstTypes(t.Right, subs)}
	case ast.TSum:
		return ast.TSum{Left: SubstTypes(t.Left, subs), Right: SubstTypes(t.Right, subs)}
	case ast.Quantifier:
		bound, body := t.Binding()
		free := FreeTypeVars(body)
		inner := subs.Without(bound).Restrict(free)
		if len(inner) == 0 {
			return t
		}
		capturing := inner.FreeVars()
		if capturing.Contains(bound) {
			fresh := Fresh(bound, capturing, free, inner.Domain())
			inner = inner.Clone().Add(bound, ast.TVar{Name: fresh})
			bound = fresh
		}
		return ast.Rebind(t, bound, SubstTypes(body, inner))
	default:
		panic("unknown type form")
	}
}

// SubstTerm replaces every free occurrence of the term variable name in e
// with replacement.
func SubstTerm(e ast.Term, name ast.Identifier, replacement ast.Term) ast.Term {
	return SubstTerms(e, NewTermSubs().Add(name, replacement))
}

// SubstTerms applies subs to e simultaneously, renaming binders that would
// capture a free variable of the range.
func SubstTerms(e ast.Term, subs TermSubs) ast.Term {
	return substituter{terms: subs}.term(e)
}

// SubstTypeInTerm replaces every free occurrence of the type variable name
// in the annotations and type arguments of e.
func SubstTypeInTerm(e ast.Term, name ast.Identifier, replacement ast.Type) ast.Term {
	return SubstTypesInTerm(e, NewSubs().Add(name, replacement))
}

// SubstTypesInTerm applies subs to every type inside e.
func SubstTypesInTerm(e ast.Term, subs Subs) ast.Term {
	return substituter{types: subs}.term(e)
}

// substituter carries both namespaces' mappings down through a term.
type substituter struct {
	terms TermSubs
	types Subs
}

func (s substituter) empty() bool {
	return len(s.terms) == 0 && len(s.types) == 0
}

func (s substituter) typ(t ast.Type) ast.Type {
	return SubstTypes(t, s.types)
}

// within drops the mappings for variables that do not occur free in body.
func (s substituter) within(body ast.Term) substituter {
	return substituter{
		terms: s.terms.Restrict(FreeTermVars(body)),
		types: s.types.Restrict(FreeTypeVarsInTerm(body)),
	}
}

// bindTerm enters the scope of a term binder.
func (s substituter) bindTerm(name ast.Identifier, body ast.Term) (ast.Identifier, substituter) {
	s.terms = s.terms.Without(name)
	s = s.within(body)
	capturing := s.terms.FreeVars()
	if capturing.Contains(name) {
		fresh := Fresh(name, capturing, FreeTermVars(body), s.terms.Domain())
		s.terms = s.terms.Clone().Add(name, ast.Var{Name: fresh})
		name = fresh
	}
	return name, s
}

// bindType enters the scope of a type binder inside a term. Terms in the
// range can mention type variables through their annotations, so those are
// avoided as well.
func (s substituter) bindType(name ast.Identifier, body ast.Term) (ast.Identifier, substituter) {
	s.types = s.types.Without(name)
	s = s.within(body)
	capturing := s.types.FreeVars().Union(s.terms.FreeTypeVars())
	if capturing.Contains(name) {
		fresh := Fresh(name, capturing, FreeTypeVarsInTerm(body), s.types.Domain())
		s.types = s.types.Clone().Add(name, ast.TVar{Name: fresh})
		name = fresh
	}
	return name, s
}

func (s substituter) term(e ast.Term) ast.Term {
	if s.empty() {
		return e
	}
	switch e := e.(type) {
	case ast.Num, ast.True, ast.False, ast.Unit:
		return e
	case ast.Var:
		if replacement, ok := s.terms.Get(e.Name); ok {
			return replacement
		}
		return e
	case ast.Addop:
		return ast.Addop{Op: e.Op, Left: s.term(e.Left), Right: s.term(e.Right)}
	case ast.Mulop:
		return ast.Mulop{Op: e.Op, Left: s.term(e.Left), Right: s.term(e.Right)}
	case ast.Relop:
		return ast.Relop{Op: e.Op, Left: s.term(e.Left), Right: s.term(e.Right)}
	case ast.And:
		return ast.And{Left: s.term(e.Left), Right: s.term(e.Right)}
	case ast.Or:
		return ast.Or{Left: s.term(e.Left), Right: s.term(e.Right)}
	case ast.If:
		return ast.If{Cond: s.term(e.Cond), Then: s.term(e.Then), Else: s.term(e.Else)}
	case ast.Lam:
		bound, inner := s.bindTerm(e.Bound, e.Body)
		return ast.Lam{Bound: bound, Annot: s.typ(e.Annot), Body: inner.term(e.Body)}
	case ast.Fix:
		bound, inner := s.bindTerm(e.Bound, e.Body)
		return ast.Fix{Bound: bound, Annot: s.typ(e.Annot), Body: inner.term(e.Body)}
	case ast.App:
		return ast.App{Fn: s.term(e.Fn), Arg: s.term(e.Arg)}
	case ast.Pair:
		return ast.Pair{Left: s.term(e.Left), Right: s.term(e.Right)}
	case ast.Project:
		return ast.Project{Term: s.term(e.Term), Side: e.Side}
	case ast.Inject:
		return ast.Inject{Term: s.term(e.Term), Side: e.Side, Sum: s.typ(e.Sum)}
	case ast.Case:
		left, leftScope := s.bindTerm(e.LeftBound, e.LeftArm)
		right, rightScope := s.bindTerm(e.RightBound, e.RightArm)
		return ast.Case{
			Scrutinee:  s.term(e.Scrutinee),
			LeftBound:  left,
			LeftArm:    leftScope.term(e.LeftArm),
			RightBound: right,
			RightArm:   rightScope.term(e.RightArm),
		}
	case ast.TyLam:
		bound, inner := s.bindType(e.Bound, e.Body)
		return ast.TyLam{Bound: bound, Body: inner.term(e.Body)}
	case ast.TyApp:
		return ast.TyApp{Term: s.term(e.Term), Arg: s.typ(e.Arg)}
	case ast.Fold:
		return ast.Fold{Term: s.term(e.Term), Rec: s.typ(e.Rec)}
	case ast.Unfold:
		return ast.Unfold{Term: s.term(e.Term)}
	case ast.Export:
		return ast.Export{Term: s.term(e.Term), Witness: s.typ(e.Witness), Exists: s.typ(e.Exists)}
	case ast.Import:
		value, inner := s.bindTerm(e.ValueBound, e.Body)
		typ, inner := inner.bindType(e.TypeBound, e.Body)
		return ast.Import{
			ValueBound: value,
			TypeBound:  typ,
			Module:     s.term(e.Module),
			Body:       inner.term(e.Body),
		}
	default:
		panic("unknown term form")
	}
}
