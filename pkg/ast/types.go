package ast

// Type is a type expression.
type Type interface {
	Node
	isType()
}

// TNum is the type of 32-bit integers.
type TNum struct{}

// TBool is the type of booleans.
type TBool struct{}

// TUnit is the type with the single value ().
type TUnit struct{}

// TVar is a reference to a type variable.
type TVar struct {
	Name Identifier
}

// TFn is the type of functions from Arg to Ret.
type TFn struct {
	Arg Type
	Ret Type
}

// TProduct is the type of pairs.
type TProduct struct {
	Left  Type
	Right Type
}

// TSum is the type of left or right injections.
type TSum struct {
	Left  Type
	Right Type
}

// TRec is the iso-recursive type rec Bound . Body.
type TRec struct {
	Bound Identifier
	Body  Type
}

// TForall is the universal type forall Bound . Body.
type TForall struct {
	Bound Identifier
	Body  Type
}

// TExists is the existential type exists Bound . Body.
type TExists struct {
	Bound Identifier
	Body  Type
}

var (
	_ Type = TNum{}
	_ Type = TBool{}
	_ Type = TUnit{}
	_ Type = TVar{}
	_ Type = TFn{}
	_ Type = TProduct{}
	_ Type = TSum{}
	_ Type = TRec{}
	_ Type = TForall{}
	_ Type = TExists{}
)

func (TNum) node()     {}
func (TBool) node()    {}
func (TUnit) node()    {}
func (TVar) node()     {}
func (TFn) node()      {}
func (TProduct) node() {}
func (TSum) node()     {}
func (TRec) node()     {}
func (TForall) node()  {}
func (TExists) node()  {}

func (TNum) isType()     {}
func (TBool) isType()    {}
func (TUnit) isType()    {}
func (TVar) isType()     {}
func (TFn) isType()      {}
func (TProduct) isType() {}
func (TSum) isType()     {}
func (TRec) isType()     {}
func (TForall) isType()  {}
func (TExists) isType()  {}

func (t TNum) String() string     { return FormatType(t) }
func (t TBool) String() string    { return FormatType(t) }
func (t TUnit) String() string    { return FormatType(t) }
func (t TVar) String() string     { return FormatType(t) }
func (t TFn) String() string      { return FormatType(t) }
func (t TProduct) String() string { return FormatType(t) }
func (t TSum) String() string     { return FormatType(t) }
func (t TRec) String() string     { return FormatType(t) }
func (t TForall) String() string  { return FormatType(t) }
func (t TExists) String() string  { return FormatType(t) }

// Quantifier is implemented by the three binding type forms.
type Quantifier interface {
	Type
	Binding() (Identifier, Type)
}

func (t TRec) Binding() (Identifier, Type)    { return t.Bound, t.Body }
func (t TForall) Binding() (Identifier, Type) { return t.Bound, t.Body }
func (t TExists) Binding() (Identifier, Type) { return t.Bound, t.Body }

// Rebind returns a quantifier of the same kind as q with a new bound name
// and body.
func Rebind(q Quantifier, bound Identifier, body Type) Quantifier {
	switch q.(type) {
	case TRec:
		return TRec{Bound: bound, Body: body}
	case TForall:
		return TForall{Bound: bound, Body: body}
	case TExists:
		return TExists{Bound: bound, Body: body}
	default:
		panic("unknown quantifier")
	}
}
