package symbol

import "github.com/vito/sysf/pkg/ast"

// FreeTypeVars returns the type variables occurring free in t.
func FreeTypeVars(t ast.Type) VarSet {
	switch t := t.(type) {
	case ast.TNum, ast.TBool, ast.TUnit:
		return NewVarSet()
	case ast.TVar:
		return NewVarSet(t.Name)
	case ast.TFn:
		return FreeTypeVars(t.Arg).Union(FreeTypeVars(t.Ret))
	case ast.TProduct:
		return FreeTypeVars(t.Left).Union(FreeTypeVars(t.Right))
	case ast.TSum:
		return FreeTypeVars(t.Left).Union(FreeTypeVars(t.Right))
	case ast.Quantifier:
		bound, body := t.Binding()
		set := FreeTypeVars(body)
		set.Remove(bound)
		return set
	default:
		panic("unknown type form")
	}
}

// FreeTermVars returns the term variables occurring free in e.
func FreeTermVars(e ast.Term) VarSet {
	switch e := e.(type) {
	case ast.Num, ast.True, ast.False, ast.Unit:
		return NewVarSet()
	case ast.Var:
		return NewVarSet(e.Name)
	case ast.Addop:
		return FreeTermVars(e.Left).Union(FreeTermVars(e.Right))
	case ast.Mulop:
		return FreeTermVars(e.Left).Union(FreeTermVars(e.Right))
	case ast.Relop:
		return FreeTermVars(e.Left).Union(FreeTermVars(e.Right))
	case ast.And:
		return FreeTermVars(e.Left).Union(FreeTermVars(e.Right))
	case ast.Or:
		return FreeTermVars(e.Left).Union(FreeTermVars(e.Right))
	case ast.If:
		return FreeTermVars(e.Cond).Union(FreeTermVars(e.Then)).Union(FreeTermVars(e.Else))
	case ast.Lam:
		return freeUnder(e.Bound, e.Body)
	case ast.Fix:
		return freeUnder(e.Bound, e.Body)
	case ast.App:
		return FreeTermVars(e.Fn).Union(FreeTermVars(e.Arg))
	case ast.Pair:
		return FreeTermVars(e.Left).Union(FreeTermVars(e.Right))
	case ast.Project:
		return FreeTermVars(e.Term)
	case ast.Inject:
		return FreeTermVars(e.Term)
	case ast.Case:
		return FreeTermVars(e.Scrutinee).
			Union(freeUnder(e.LeftBound, e.LeftArm)).
			Union(freeUnder(e.RightBound, e.RightArm))
	case ast.TyLam:
		return FreeTermVars(e.Body)
	case ast.TyApp:
		return FreeTermVars(e.Term)
	case ast.Fold:
		return FreeTermVars(e.Term)
	case ast.Unfold:
		return FreeTermVars(e.Term)
	case ast.Export:
		return FreeTermVars(e.Term)
	case ast.Import:
		return FreeTermVars(e.Module).Union(freeUnder(e.ValueBound, e.Body))
	default:
		panic("unknown term form")
	}
}

func freeUnder(bound ast.Identifier, body ast.Term) VarSet {
	set := FreeTermVars(body)
	set.Remove(bound)
	return set
}

// FreeTypeVarsInTerm returns the type variables occurring free in the type
// annotations and type arguments of e.
func FreeTypeVarsInTerm(e ast.Term) VarSet {
	switch e := e.(type) {
	case ast.Num, ast.True, ast.False, ast.Unit, ast.Var:
		return NewVarSet()
	case ast.Addop:
		return FreeTypeVarsInTerm(e.Left).Union(FreeTypeVarsInTerm(e.Right))
	case ast.Mulop:
		return FreeTypeVarsInTerm(e.Left).Union(FreeTypeVarsInTerm(e.Right))
	case ast.Relop:
		return FreeTypeVarsInTerm(e.Left).Union(FreeTypeVarsInTerm(e.Right))
	case ast.And:
		return FreeTypeVarsInTerm(e.Left).Union(FreeTypeVarsInTerm(e.Right))
	case ast.Or:
		return FreeTypeVarsInTerm(e.Left).Union(FreeTypeVarsInTerm(e.Right))
	case ast.If:
		return FreeTypeVarsInTerm(e.Cond).
			Union(FreeTypeVarsInTerm(e.Then)).
			Union(FreeTypeVarsInTerm(e.Else))
	case ast.Lam:
		return FreeTypeVars(e.Annot).Union(FreeTypeVarsInTerm(e.Body))
	case ast.Fix:
		return FreeTypeVars(e.Annot).Union(FreeTypeVarsInTerm(e.Body))
	case ast.App:
		return FreeTypeVarsInTerm(e.Fn).Union(FreeTypeVarsInTerm(e.Arg))
	case ast.Pair:
		return FreeTypeVarsInTerm(e.Left).Union(FreeTypeVarsInTerm(e.Right))
	case ast.Project:
		return FreeTypeVarsInTerm(e.Term)
	case ast.Inject:
		return FreeTypeVarsInTerm(e.Term).Union(FreeTypeVars(e.Sum))
	case ast.Case:
		return FreeTypeVarsInTerm(e.Scrutinee).
			Union(FreeTypeVarsInTerm(e.LeftArm)).
			Union(FreeTypeVarsInTerm(e.RightArm))
	case ast.TyLam:
		set := FreeTypeVarsInTerm(e.Body)
		set.Remove(e.Bound)
		return set
	case ast.TyApp:
		return FreeTypeVarsInTerm(e.Term).Union(FreeTypeVars(e.Arg))
	case ast.Fold:
		return FreeTypeVarsInTerm(e.Term).Union(FreeTypeVars(e.Rec))
	case ast.Unfold:
		return FreeTypeVarsInTerm(e.Term)
	case ast.Export:
		return FreeTypeVarsInTerm(e.Term).
			Union(FreeTypeVars(e.Witness)).
			Union(FreeTypeVars(e.Exists))
	case ast.Import:
		set := FreeTypeVarsInTerm(e.Body)
		set.Remove(e.TypeBound)
		return FreeTypeVarsInTerm(e.Module).Union(set)
	default:
		panic("unknown term form")
	}
}
