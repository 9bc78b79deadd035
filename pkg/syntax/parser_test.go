package syntax_test

import (
	"errors"
	"math"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/syntax"
)

func v(name string) ast.Var {
	return ast.Var{Name: ast.Identifier(name)}
}

func n(i int32) ast.Num {
	return ast.Num{Value: i}
}

func tv(name string) ast.TVar {
	return ast.TVar{Name: ast.Identifier(name)}
}

func TestParseTerm(t *testing.T) {
	numFn := ast.TFn{Arg: ast.TNum{}, Ret: ast.TNum{}}

	for _, test := range []struct {
		name     string
		src      string
		expected ast.Term
	}{
		{"literal", "42", n(42)},
		{"negative literal", "-5", n(-5)},
		{"smallest literal", "-2147483648", n(math.MinInt32)},
		{"booleans", "(true, false)", ast.Pair{Left: ast.True{}, Right: ast.False{}}},
		{"unit", "()", ast.Unit{}},
		{"comment", "// the answer\n42", n(42)},
		{
			"multiplication binds tighter",
			"1 + 2 * 3",
			ast.Addop{Op: ast.Add, Left: n(1), Right: ast.Mulop{Op: ast.Mul, Left: n(2), Right: n(3)}},
		},
		{
			"subtraction is left associative",
			"1 - 2 - 3",
			ast.Addop{Op: ast.Sub, Left: ast.Addop{Op: ast.Sub, Left: n(1), Right: n(2)}, Right: n(3)},
		},
		{
			"subtracting a negative",
			"x - -1",
			ast.Addop{Op: ast.Sub, Left: v("x"), Right: n(-1)},
		},
		{
			"boolean precedence",
			"a && b || c < 0",
			ast.Or{
				Left:  ast.And{Left: v("a"), Right: v("b")},
				Right: ast.Relop{Op: ast.Lt, Left: v("c"), Right: n(0)},
			},
		},
		{
			"application is left associative",
			"f x y",
			ast.App{Fn: ast.App{Fn: v("f"), Arg: v("x")}, Arg: v("y")},
		},
		{
			"application binds tighter than arithmetic",
			"n * fact (n - 1)",
			ast.Mulop{
				Op:    ast.Mul,
				Left:  v("n"),
				Right: ast.App{Fn: v("fact"), Arg: ast.Addop{Op: ast.Sub, Left: v("n"), Right: n(1)}},
			},
		},
		{
			"projection of unfold",
			"(unfold o).L",
			ast.Project{Term: ast.Unfold{Term: v("o")}, Side: ast.Left},
		},
		{
			"unfold of projection",
			"unfold o.R",
			ast.Unfold{Term: ast.Project{Term: v("o"), Side: ast.Right}},
		},
		{
			"type application",
			"id [num] 100",
			ast.App{Fn: ast.TyApp{Term: v("id"), Arg: ast.TNum{}}, Arg: n(100)},
		},
		{
			"conditional",
			"if 1 < 2 then 3 else 4",
			ast.If{Cond: ast.Relop{Op: ast.Lt, Left: n(1), Right: n(2)}, Then: n(3), Else: n(4)},
		},
		{
			"lambda body extends right",
			"fun (x : num) -> x + 1",
			ast.Lam{Bound: "x", Annot: ast.TNum{}, Body: ast.Addop{Op: ast.Add, Left: v("x"), Right: n(1)}},
		},
		{
			"injection",
			"inj 1=L as Num+Num",
			ast.Inject{Term: n(1), Side: ast.Left, Sum: ast.TSum{Left: ast.TNum{}, Right: ast.TNum{}}},
		},
		{
			"case",
			"case s {L(l)->l+1 | R(r)->3*r}",
			ast.Case{
				Scrutinee:  v("s"),
				LeftBound:  "l",
				LeftArm:    ast.Addop{Op: ast.Add, Left: v("l"), Right: n(1)},
				RightBound: "r",
				RightArm:   ast.Mulop{Op: ast.Mul, Left: n(3), Right: v("r")},
			},
		},
		{
			"type abstraction",
			"tyfun a -> fun (x : a) -> x",
			ast.TyLam{Bound: "a", Body: ast.Lam{Bound: "x", Annot: tv("a"), Body: v("x")}},
		},
		{
			"fold",
			"fold (0, u) as rec a . num * a",
			ast.Fold{
				Term: ast.Pair{Left: n(0), Right: v("u")},
				Rec:  ast.TRec{Bound: "a", Body: ast.TProduct{Left: ast.TNum{}, Right: tv("a")}},
			},
		},
		{
			"export",
			"export 0 without num as exists b . b",
			ast.Export{Term: n(0), Witness: ast.TNum{}, Exists: ast.TExists{Bound: "b", Body: tv("b")}},
		},
		{
			"import",
			"import (m, a) = x in m",
			ast.Import{ValueBound: "m", TypeBound: "a", Module: v("x"), Body: v("m")},
		},
		{
			"let",
			"let x : num = 1 in x",
			ast.App{Fn: ast.Lam{Bound: "x", Annot: ast.TNum{}, Body: v("x")}, Arg: n(1)},
		},
		{
			"letrec",
			"letrec f : num -> num = fun (n : num) -> f n in f 1",
			ast.App{
				Fn: ast.Lam{Bound: "f", Annot: numFn, Body: ast.App{Fn: v("f"), Arg: n(1)}},
				Arg: ast.Fix{
					Bound: "f",
					Annot: numFn,
					Body:  ast.Lam{Bound: "n", Annot: ast.TNum{}, Body: ast.App{Fn: v("f"), Arg: v("n")}},
				},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			e, err := syntax.ParseTerm("test.sysf", test.src)
			require.NoError(t, err)
			require.Equal(t, test.expected, e)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, test := range []struct {
		src      string
		expected ast.Type
	}{
		{"num", ast.TNum{}},
		{"Bool", ast.TBool{}},
		{"unit", ast.TUnit{}},
		{"num -> num -> num", ast.TFn{Arg: ast.TNum{}, Ret: ast.TFn{Arg: ast.TNum{}, Ret: ast.TNum{}}}},
		{"(num -> num) -> num", ast.TFn{Arg: ast.TFn{Arg: ast.TNum{}, Ret: ast.TNum{}}, Ret: ast.TNum{}}},
		{"num + bool * unit", ast.TSum{Left: ast.TNum{}, Right: ast.TProduct{Left: ast.TBool{}, Right: ast.TUnit{}}}},
		{"a + b + c", ast.TSum{Left: ast.TSum{Left: tv("a"), Right: tv("b")}, Right: tv("c")}},
		{"forall a . a -> a", ast.TForall{Bound: "a", Body: ast.TFn{Arg: tv("a"), Ret: tv("a")}}},
		{
			"exists b . rec a . b * (a -> num)",
			ast.TExists{Bound: "b", Body: ast.TRec{Bound: "a", Body: ast.TProduct{
				Left:  tv("b"),
				Right: ast.TFn{Arg: tv("a"), Ret: ast.TNum{}},
			}}},
		},
	} {
		t.Run(test.src, func(t *testing.T) {
			typ, err := syntax.ParseType("test.sysf", test.src)
			require.NoError(t, err)
			require.Equal(t, test.expected, typ)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, src := range []string{
		"1 + (1 * (2 - 3) + 4) / (5 + 6)",
		"if 1 < 2 * 3 then 3 == 4 + 1 else 4 > 5",
		"(fun (x : num) -> x) (-1)",
		"f (g x) y.L",
		"(unfold o).R o",
		"unfold (unfold o)",
		"case (inj 1 = L as num + num) { L(l) -> l + 1 | R(r) -> 3 * r }",
		"(tyfun a -> fun (x : a) -> x) [num -> num] (fun (y : num) -> y)",
		"export (fold (0, fun (o : rec a . num * (a -> num)) -> (unfold o).L) as rec a . num * (a -> num)) without num as exists b . rec a . b * (a -> num)",
		"import (m, a) = m0 in (unfold m).R m",
		"(fix (f : num -> num) -> fun (n : num) -> f n) 3",
		"(a || b) && (c || d)",
		"(if c then 1 else 2) + 3",
		"((1, 2), (3, 4)).L.R",
	} {
		t.Run(src, func(t *testing.T) {
			e, err := syntax.ParseTerm("test.sysf", src)
			require.NoError(t, err)

			printed := ast.FormatTerm(e)
			reparsed, err := syntax.ParseTerm("printed.sysf", printed)
			require.NoError(t, err, "printed as %s", printed)
			require.Equal(t, e, reparsed)
			require.Equal(t, printed, ast.FormatTerm(reparsed))
		})
	}
}

func TestPrintedForms(t *testing.T) {
	for _, test := range []struct {
		src      string
		expected string
	}{
		{"1+2*3", "1 + 2 * 3"},
		{"(1+2)*3", "(1 + 2) * 3"},
		{"f (-1)", "f (-1)"},
		{"inj 1=L as Num+Num", "inj 1 = L as num + num"},
		{"let x : num = 1 in x", "(fun (x : num) -> x) 1"},
		{"(unfold o).L", "(unfold o).L"},
		{"tyfun a->fun(x:a)->x", "tyfun a -> fun (x : a) -> x"},
	} {
		t.Run(test.src, func(t *testing.T) {
			e, err := syntax.ParseTerm("test.sysf", test.src)
			require.NoError(t, err)
			require.Equal(t, test.expected, e.String())
		})
	}

	typ, err := syntax.ParseType("test.sysf", "(num -> num) -> (forall a . a) * (unit + bool)")
	require.NoError(t, err)
	require.Equal(t, "(num -> num) -> (forall a . a) * (unit + bool)", typ.String())
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name    string
		src     string
		line    int
		column  int
		message string
	}{
		{"missing annotation", "let x = 1 in x", 1, 7, `expected ":", found "="`},
		{"dangling operator", "1 +", 1, 4, "unexpected end of input"},
		{"bad character", "1 $ 2", 1, 3, "unexpected character '$'"},
		{"invalid utf-8", "1 \xa0 2", 1, 3, "unexpected character '\ufffd'"},
		{"unicode space", "1\u00a0+ 2 +", 1, 8, "unexpected end of input"},
		{"overflow", "99999999999", 1, 1, "number 99999999999 does not fit in 32 bits"},
		{"chained comparison", "1 < 2 < 3", 1, 7, "comparisons cannot be chained"},
		{"trailing input", "f x)", 1, 4, `expected end of input, found ")"`},
		{"bad side", "x.Q", 1, 3, `expected L or R, found "Q"`},
		{"arms out of order", "case s { R(r) -> r | L(l) -> l }", 1, 10, `expected L arm, found "R"`},
		{"second line", "let x : num = 1 in\n  x +", 2, 6, "unexpected end of input"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := syntax.ParseTerm("test.sysf", test.src)
			require.Error(t, err)

			var synErr *syntax.Error
			require.True(t, errors.As(err, &synErr))
			require.Equal(t, test.line, synErr.Line)
			require.Equal(t, test.column, synErr.Column)
			require.Equal(t, test.message, synErr.Message)
		})
	}
}

func TestErrorHighlight(t *testing.T) {
	_, err := syntax.ParseTerm("test.sysf", "let x = 1 in x")
	require.Error(t, err)

	var synErr *syntax.Error
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, `test.sysf:1:7: expected ":", found "="`, synErr.Error())

	expected := "" +
		"Error: expected \":\", found \"=\"\n" +
		"  --> test.sysf:1:7\n" +
		"     |\n" +
		"   1 | let x = 1 in x\n" +
		"             ^\n" +
		"     |\n"
	require.Equal(t, expected, ansi.Strip(synErr.Highlight()))
}
