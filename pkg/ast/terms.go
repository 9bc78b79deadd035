package ast

// Term is a term expression.
type Term interface {
	Node
	isTerm()
}

// AddOp is an additive operator.
type AddOp int

const (
	Add AddOp = iota
	Sub
)

func (op AddOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	default:
		panic("invalid additive operator")
	}
}

// MulOp is a multiplicative operator.
type MulOp int

const (
	Mul MulOp = iota
	Div
)

func (op MulOp) String() string {
	switch op {
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		panic("invalid multiplicative operator")
	}
}

// RelOp is a relational operator.
type RelOp int

const (
	Lt RelOp = iota
	Gt
	Eq
)

func (op RelOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Eq:
		return "=="
	default:
		panic("invalid relational operator")
	}
}

// Num is a 32-bit integer literal.
type Num struct {
	Value int32
}

type True struct{}

type False struct{}

// Unit is the value ().
type Unit struct{}

// Addop is Left + Right or Left - Right.
type Addop struct {
	Op    AddOp
	Left  Term
	Right Term
}

// Mulop is Left * Right or Left / Right.
type Mulop struct {
	Op    MulOp
	Left  Term
	Right Term
}

// Relop compares two numbers.
type Relop struct {
	Op    RelOp
	Left  Term
	Right Term
}

type And struct {
	Left  Term
	Right Term
}

type Or struct {
	Left  Term
	Right Term
}

type If struct {
	Cond Term
	Then Term
	Else Term
}

// Var is a reference to a term variable.
type Var struct {
	Name Identifier
}

// Lam is fun (Bound : Annot) -> Body.
type Lam struct {
	Bound Identifier
	Annot Type
	Body  Term
}

type App struct {
	Fn  Term
	Arg Term
}

type Pair struct {
	Left  Term
	Right Term
}

// Project selects one component of a pair.
type Project struct {
	Term Term
	Side Side
}

// Inject is inj Term = Side as Sum.
type Inject struct {
	Term Term
	Side Side
	Sum  Type
}

// Case eliminates a sum. LeftBound scopes over LeftArm and RightBound over
// RightArm.
type Case struct {
	Scrutinee  Term
	LeftBound  Identifier
	LeftArm    Term
	RightBound Identifier
	RightArm   Term
}

// Fix is fix (Bound : Annot) -> Body, where Bound refers to the whole Fix.
type Fix struct {
	Bound Identifier
	Annot Type
	Body  Term
}

// TyLam abstracts Body over the type variable Bound.
type TyLam struct {
	Bound Identifier
	Body  Term
}

// TyApp instantiates a polymorphic term at Arg.
type TyApp struct {
	Term Term
	Arg  Type
}

// Fold introduces the recursive type Rec.
type Fold struct {
	Term Term
	Rec  Type
}

type Unfold struct {
	Term Term
}

// Export packs Term with the hidden Witness type as the existential type
// Exists.
type Export struct {
	Term    Term
	Witness Type
	Exists  Type
}

// Import opens Module, binding its payload to ValueBound and its abstract
// type to TypeBound within Body.
type Import struct {
	ValueBound Identifier
	TypeBound  Identifier
	Module     Term
	Body       Term
}

var (
	_ Term = Num{}
	_ Term = True{}
	_ Term = False{}
	_ Term = Unit{}
	_ Term = Addop{}
	_ Term = Mulop{}
	_ Term = Relop{}
	_ Term = And{}
	_ Term = Or{}
	_ Term = If{}
	_ Term = Var{}
	_ Term = Lam{}
	_ Term = App{}
	_ Term = Pair{}
	_ Term = Project{}
	_ Term = Inject{}
	_ Term = Case{}
	_ Term = Fix{}
	_ Term = TyLam{}
	_ Term = TyApp{}
	_ Term = Fold{}
	_ Term = Unfold{}
	_ Term = Export{}
	_ Term = Import{}
)

func (Num) node()     {}
func (True) node()    {}
func (False) node()   {}
func (Unit) node()    {}
func (Addop) node()   {}
func (Mulop) node()   {}
func (Relop) node()   {}
func (And) node()     {}
func (Or) node()      {}
func (If) node()      {}
func (Var) node()     {}
func (Lam) node()     {}
func (App) node()     {}
func (Pair) node()    {}
func (Project) node() {}
func (Inject) node()  {}
func (Case) node()    {}
func (Fix) node()     {}
func (TyLam) node()   {}
func (TyApp) node()   {}
func (Fold) node()    {}
func (Unfold) node()  {}
func (Export) node()  {}
func (Import) node()  {}

func (Num) isTerm()     {}
func (True) isTerm()    {}
func (False) isTerm()   {}
func (Unit) isTerm()    {}
func (Addop) isTerm()   {}
func (Mulop) isTerm()   {}
func (Relop) isTerm()   {}
func (And) isTerm()     {}
func (Or) isTerm()      {}
func (If) isTerm()      {}
func (Var) isTerm()     {}
func (Lam) isTerm()     {}
func (App) isTerm()     {}
func (Pair) isTerm()    {}
func (Project) isTerm() {}
func (Inject) isTerm()  {}
func (Case) isTerm()    {}
func (Fix) isTerm()     {}
func (TyLam) isTerm()   {}
func (TyApp) isTerm()   {}
func (Fold) isTerm()    {}
func (Unfold) isTerm()  {}
func (Export) isTerm()  {}
func (Import) isTerm()  {}

func (e Num) String() string     { return FormatTerm(e) }
func (e True) String() string    { return FormatTerm(e) }
func (e False) String() string   { return FormatTerm(e) }
func (e Unit) String() string    { return FormatTerm(e) }
func (e Addop) String() string   { return FormatTerm(e) }
func (e Mulop) String() string   { return FormatTerm(e) }
func (e Relop) String() string   { return FormatTerm(e) }
func (e And) String() string     { return FormatTerm(e) }
func (e Or) String() string      { return FormatTerm(e) }
func (e If) String() string      { return FormatTerm(e) }
func (e Var) String() string     { return FormatTerm(e) }
func (e Lam) String() string     { return FormatTerm(e) }
func (e App) String() string     { return FormatTerm(e) }
func (e Pair) String() string    { return FormatTerm(e) }
func (e Project) String() string { return FormatTerm(e) }
func (e Inject) String() string  { return FormatTerm(e) }
func (e Case) String() string    { return FormatTerm(e) }
func (e Fix) String() string     { return FormatTerm(e) }
func (e TyLam) String() string   { return FormatTerm(e) }
func (e TyApp) String() string   { return FormatTerm(e) }
func (e Fold) String() string    { return FormatTerm(e) }
func (e Unfold) String() string  { return FormatTerm(e) }
func (e Export) String() string  { return FormatTerm(e) }
func (e Import) String() string  { return FormatTerm(e) }

// Bool returns the boolean literal for b.
func Bool(b bool) Term {
	if b {
		return True{}
	}
	return False{}
}

// Let is the parser's desugaring of let x : annot = def in body.
func Let(x Identifier, annot Type, def, body Term) Term {
	return App{
		Fn:  Lam{Bound: x, Annot: annot, Body: body},
		Arg: def,
	}
}

// LetRec is the parser's desugaring of letrec x : annot = def in body.
func LetRec(x Identifier, annot Type, def, body Term) Term {
	return Let(x, annot, Fix{Bound: x, Annot: annot, Body: def}, body)
}
