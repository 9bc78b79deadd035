package ast

import (
	"bytes"
	"strconv"
)

// Binding strength of each syntactic level, loosest first. A node printed in
// a position that requires a tighter level than its own is parenthesized.
const (
	precOpen    = iota // forms whose last child extends to the right
	precOr             // ||
	precAnd            // &&
	precRel            // < > ==
	precAdd            // + -
	precMul            // * /
	precApp            // application, type application, negative literals
	precUnfold         // unfold
	precProject        // .L .R
	precAtom
)

const (
	precTypeArrow = iota // ->, quantifiers
	precTypeSum          // +
	precTypeProduct      // *
	precTypeAtom
)

// Formatter prints trees in the concrete syntax accepted by the syntax
// package, with the minimum number of parentheses.
type Formatter struct {
	buf bytes.Buffer
}

// FormatTerm renders a term in surface syntax.
func FormatTerm(e Term) string {
	f := &Formatter{}
	f.term(e, precOpen)
	return f.buf.String()
}

// FormatType renders a type in surface syntax.
func FormatType(t Type) string {
	f := &Formatter{}
	f.typ(t, precTypeArrow)
	return f.buf.String()
}

func (f *Formatter) write(ss ...string) {
	for _, s := range ss {
		f.buf.WriteString(s)
	}
}

func (f *Formatter) open(own, want int) func() {
	if own >= want {
		return func() {}
	}
	f.write("(")
	return func() { f.write(")") }
}

func (f *Formatter) typ(t Type, want int) {
	switch t := t.(type) {
	case TNum:
		f.write("num")
	case TBool:
		f.write("bool")
	case TUnit:
		f.write("unit")
	case TVar:
		f.write(string(t.Name))
	case TFn:
		defer f.open(precTypeArrow, want)()
		f.typ(t.Arg, precTypeSum)
		f.write(" -> ")
		f.typ(t.Ret, precTypeArrow)
	case TSum:
		defer f.open(precTypeSum, want)()
		f.typ(t.Left, precTypeSum)
		f.write(" + ")
		f.typ(t.Right, precTypeProduct)
	case TProduct:
		defer f.open(precTypeProduct, want)()
		f.typ(t.Left, precTypeProduct)
		f.write(" * ")
		f.typ(t.Right, precTypeAtom)
	case TRec:
		f.quantifier("rec", t.Bound, t.Body, want)
	case TForall:
		f.quantifier("forall", t.Bound, t.Body, want)
	case TExists:
		f.quantifier("exists", t.Bound, t.Body, want)
	default:
		panic("unknown type form")
	}
}

func (f *Formatter) quantifier(kw string, bound Identifier, body Type, want int) {
	defer f.open(precTypeArrow, want)()
	f.write(kw, " ", string(bound), " . ")
	f.typ(body, precTypeArrow)
}

func (f *Formatter) binary(op string, own int, l, r Term, lwant, rwant, want int) {
	defer f.open(own, want)()
	f.term(l, lwant)
	f.write(" ", op, " ")
	f.term(r, rwant)
}

func (f *Formatter) term(e Term, want int) {
	switch e := e.(type) {
	case Num:
		if e.Value < 0 {
			defer f.open(precApp, want)()
		}
		f.write(strconv.FormatInt(int64(e.Value), 10))
	case True:
		f.write("true")
	case False:
		f.write("false")
	case Unit:
		f.write("()")
	case Var:
		f.write(string(e.Name))
	case Or:
		f.binary("||", precOr, e.Left, e.Right, precOr, precAnd, want)
	case And:
		f.binary("&&", precAnd, e.Left, e.Right, precAnd, precRel, want)
	case Relop:
		f.binary(e.Op.String(), precRel, e.Left, e.Right, precAdd, precAdd, want)
	case Addop:
		f.binary(e.Op.String(), precAdd, e.Left, e.Right, precAdd, precMul, want)
	case Mulop:
		f.binary(e.Op.String(), precMul, e.Left, e.Right, precMul, precApp, want)
	case If:
		defer f.open(precOpen, want)()
		f.write("if ")
		f.term(e.Cond, precOpen)
		f.write(" then ")
		f.term(e.Then, precOpen)
		f.write(" else ")
		f.term(e.Else, precOpen)
	case Lam:
		f.abstraction("fun", e.Bound, e.Annot, e.Body, want)
	case Fix:
		f.abstraction("fix", e.Bound, e.Annot, e.Body, want)
	case App:
		defer f.open(precApp, want)()
		f.term(e.Fn, precApp)
		f.write(" ")
		f.term(e.Arg, precProject)
	case Pair:
		f.write("(")
		f.term(e.Left, precOpen)
		f.write(", ")
		f.term(e.Right, precOpen)
		f.write(")")
	case Project:
		defer f.open(precProject, want)()
		f.term(e.Term, precProject)
		f.write(".", e.Side.String())
	case Inject:
		defer f.open(precOpen, want)()
		f.write("inj ")
		f.term(e.Term, precOr)
		f.write(" = ", e.Side.String(), " as ")
		f.typ(e.Sum, precTypeArrow)
	case Case:
		f.write("case ")
		f.term(e.Scrutinee, precOr)
		f.write(" { L(", string(e.LeftBound), ") -> ")
		f.term(e.LeftArm, precOpen)
		f.write(" | R(", string(e.RightBound), ") -> ")
		f.term(e.RightArm, precOpen)
		f.write(" }")
	case TyLam:
		defer f.open(precOpen, want)()
		f.write("tyfun ", string(e.Bound), " -> ")
		f.term(e.Body, precOpen)
	case TyApp:
		defer f.open(precApp, want)()
		f.term(e.Term, precApp)
		f.write(" [")
		f.typ(e.Arg, precTypeArrow)
		f.write("]")
	case Fold:
		defer f.open(precOpen, want)()
		f.write("fold ")
		f.term(e.Term, precOr)
		f.write(" as ")
		f.typ(e.Rec, precTypeArrow)
	case Unfold:
		defer f.open(precUnfold, want)()
		f.write("unfold ")
		f.term(e.Term, precUnfold)
	case Export:
		defer f.open(precOpen, want)()
		f.write("export ")
		f.term(e.Term, precOr)
		f.write(" without ")
		f.typ(e.Witness, precTypeArrow)
		f.write(" as ")
		f.typ(e.Exists, precTypeArrow)
	case Import:
		defer f.open(precOpen, want)()
		f.write("import (", string(e.ValueBound), ", ", string(e.TypeBound), ") = ")
		f.term(e.Module, precOpen)
		f.write(" in ")
		f.term(e.Body, precOpen)
	default:
		panic("unknown term form")
	}
}

func (f *Formatter) abstraction(kw string, x Identifier, annot Type, body Term, want int) {
	defer f.open(precOpen, want)()
	f.write(kw, " (", string(x), " : ")
	f.typ(annot, precTypeArrow)
	f.write(") -> ")
	f.term(body, precOpen)
}
