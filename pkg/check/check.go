// Package check synthesizes the type of a term.
//
// Every form has exactly one rule and every binder carries its annotation,
// so checking is a single bottom-up pass with no unification. Types are
// compared up to renaming of bound type variables.
package check

import (
	"github.com/pkg/errors"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/symbol"
)

// TypeCheck returns the type of a closed term.
func TypeCheck(e ast.Term) (ast.Type, error) {
	return TypeCheckIn(nil, e)
}

// TypeCheckIn returns the type of e, whose free variables are typed by env.
func TypeCheckIn(env Env, e ast.Term) (ast.Type, error) {
	if e == nil {
		return nil, errors.Errorf("cannot check a nil term")
	}
	if env == nil {
		env = NewSimpleEnv()
	}
	return Synth(env, e)
}

// Synth applies the typing rule for e's form, checking its subterms first.
// It stops at the first failing rule.
func Synth(env Env, e ast.Term) (ast.Type, error) {
	switch e := e.(type) {
	case ast.Num:
		return ast.TNum{}, nil
	case ast.True, ast.False:
		return ast.TBool{}, nil
	case ast.Unit:
		return ast.TUnit{}, nil

	case ast.Addop:
		return operands(env, e.Op.String(), ast.TNum{}, ast.TNum{}, e.Left, e.Right)
	case ast.Mulop:
		return operands(env, e.Op.String(), ast.TNum{}, ast.TNum{}, e.Left, e.Right)
	case ast.Relop:
		return operands(env, e.Op.String(), ast.TNum{}, ast.TBool{}, e.Left, e.Right)
	case ast.And:
		return operands(env, "&&", ast.TBool{}, ast.TBool{}, e.Left, e.Right)
	case ast.Or:
		return operands(env, "||", ast.TBool{}, ast.TBool{}, e.Left, e.Right)

	case ast.If:
		cond, err := Synth(env, e.Cond)
		if err != nil {
			return nil, err
		}
		if _, ok := cond.(ast.TBool); !ok {
			return nil, mismatch("if condition", ast.TBool{}, cond)
		}
		then, err := Synth(env, e.Then)
		if err != nil {
			return nil, err
		}
		els, err := Synth(env, e.Else)
		if err != nil {
			return nil, err
		}
		if !symbol.AlphaEquivTypes(then, els) {
			return nil, mismatch("if branches", then, els)
		}
		return then, nil

	case ast.Var:
		t, ok := env.TypeOf(e.Name)
		if !ok {
			return nil, &TypeError{Kind: FreeVariable, Name: e.Name}
		}
		return t, nil

	case ast.Lam:
		body, err := Synth(env.Extend(e.Bound, e.Annot), e.Body)
		if err != nil {
			return nil, err
		}
		return ast.TFn{Arg: e.Annot, Ret: body}, nil

	case ast.App:
		fn, err := Synth(env, e.Fn)
		if err != nil {
			return nil, err
		}
		fnType, ok := fn.(ast.TFn)
		if !ok {
			return nil, wrongShape("function application", "a function", fn)
		}
		arg, err := Synth(env, e.Arg)
		if err != nil {
			return nil, err
		}
		if !symbol.AlphaEquivTypes(fnType.Arg, arg) {
			return nil, mismatch("function application", fnType.Arg, arg)
		}
		return fnType.Ret, nil

	case ast.Pair:
		left, err := Synth(env, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := Synth(env, e.Right)
		if err != nil {
			return nil, err
		}
		return ast.TProduct{Left: left, Right: right}, nil

	case ast.Project:
		t, err := Synth(env, e.Term)
		if err != nil {
			return nil, err
		}
		product, ok := t.(ast.TProduct)
		if !ok {
			return nil, wrongShape("projection", "a product", t)
		}
		if e.Side == ast.Left {
			return product.Left, nil
		}
		return product.Right, nil

	case ast.Inject:
		sum, ok := e.Sum.(ast.TSum)
		if !ok {
			return nil, badAnnotation("injection", "a sum", e.Sum)
		}
		t, err := Synth(env, e.Term)
		if err != nil {
			return nil, err
		}
		want := sum.Left
		if e.Side == ast.Right {
			want = sum.Right
		}
		if !symbol.AlphaEquivTypes(want, t) {
			return nil, mismatch("injection", want, t)
		}
		return e.Sum, nil

	case ast.Case:
		t, err := Synth(env, e.Scrutinee)
		if err != nil {
			return nil, err
		}
		sum, ok := t.(ast.TSum)
		if !ok {
			return nil, wrongShape("case", "a sum", t)
		}
		left, err := Synth(env.Extend(e.LeftBound, sum.Left), e.LeftArm)
		if err != nil {
			return nil, err
		}
		right, err := Synth(env.Extend(e.RightBound, sum.Right), e.RightArm)
		if err != nil {
			return nil, err
		}
		if !symbol.AlphaEquivTypes(left, right) {
			return nil, mismatch("case", left, right)
		}
		return left, nil

	case ast.Fix:
		body, err := Synth(env.Extend(e.Bound, e.Annot), e.Body)
		if err != nil {
			return nil, err
		}
		if !symbol.AlphaEquivTypes(e.Annot, body) {
			return nil, mismatch("fixpoint", e.Annot, body)
		}
		return e.Annot, nil

	case ast.TyLam:
		body, err := Synth(env, e.Body)
		if err != nil {
			return nil, err
		}
		return ast.TForall{Bound: e.Bound, Body: body}, nil

	case ast.TyApp:
		t, err := Synth(env, e.Term)
		if err != nil {
			return nil, err
		}
		forall, ok := t.(ast.TForall)
		if !ok {
			return nil, wrongShape("type application", "a universal", t)
		}
		return symbol.SubstType(forall.Body, forall.Bound, e.Arg), nil

	case ast.Fold:
		rec, ok := e.Rec.(ast.TRec)
		if !ok {
			return nil, badAnnotation("fold", "a recursive", e.Rec)
		}
		t, err := Synth(env, e.Term)
		if err != nil {
			return nil, err
		}
		want := unroll(rec)
		if !symbol.AlphaEquivTypes(want, t) {
			return nil, mismatch("fold", want, t)
		}
		return rec, nil

	case ast.Unfold:
		t, err := Synth(env, e.Term)
		if err != nil {
			return nil, err
		}
		rec, ok := t.(ast.TRec)
		if !ok {
			return nil, wrongShape("unfold", "a recursive", t)
		}
		return unroll(rec), nil

	case ast.Export:
		exists, ok := e.Exists.(ast.TExists)
		if !ok {
			return nil, badAnnotation("export", "an existential", e.Exists)
		}
		t, err := Synth(env, e.Term)
		if err != nil {
			return nil, err
		}
		want := symbol.SubstType(exists.Body, exists.Bound, e.Witness)
		if !symbol.AlphaEquivTypes(want, t) {
			return nil, mismatch("export", want, t)
		}
		return exists, nil

	case ast.Import:
		t, err := Synth(env, e.Module)
		if err != nil {
			return nil, err
		}
		exists, ok := t.(ast.TExists)
		if !ok {
			return nil, wrongShape("import", "an existential", t)
		}
		payload := symbol.SubstType(exists.Body, exists.Bound, ast.TVar{Name: e.TypeBound})
		return Synth(env.Extend(e.ValueBound, payload), e.Body)

	default:
		return nil, errors.Errorf("term of type %T is unhandled", e)
	}
}

// operands checks both operands of a primitive operator against want.
func operands(env Env, op string, want, result ast.Type, left, right ast.Term) (ast.Type, error) {
	for _, operand := range []ast.Term{left, right} {
		t, err := Synth(env, operand)
		if err != nil {
			return nil, err
		}
		if t != want {
			return nil, mismatch(op, want, t)
		}
	}
	return result, nil
}

// unroll substitutes a recursive type into its own body.
func unroll(rec ast.TRec) ast.Type {
	return symbol.SubstType(rec.Body, rec.Bound, rec)
}
