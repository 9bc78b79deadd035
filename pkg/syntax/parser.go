// Package syntax parses the concrete syntax of terms and types.
//
// The grammar, loosest first:
//
//	term    ::= 'fun' '(' x ':' type ')' '->' term
//	          | 'fix' '(' x ':' type ')' '->' term
//	          | 'tyfun' a '->' term
//	          | 'if' term 'then' term 'else' term
//	          | 'let' x ':' type '=' term 'in' term
//	          | 'letrec' x ':' type '=' term 'in' term
//	          | 'import' '(' x ',' a ')' '=' term 'in' term
//	          | 'fold' term 'as' type
//	          | 'inj' term '=' side 'as' type
//	          | 'export' term 'without' type 'as' type
//	          | or
//	or      ::= and ('||' and)*
//	and     ::= rel ('&&' rel)*
//	rel     ::= add (('<' | '>' | '==') add)?
//	add     ::= mul (('+' | '-') mul)*
//	mul     ::= app (('*' | '/') app)*
//	app     ::= unary (unary | '[' type ']')*
//	unary   ::= 'unfold' unary | postfix
//	postfix ::= atom ('.' side)*
//	atom    ::= n | '-' n | 'true' | 'false' | x | '(' ')' | '(' term ')'
//	          | '(' term ',' term ')'
//	          | 'case' term '{' 'L' '(' x ')' '->' term '|' 'R' '(' y ')' '->' term '}'
//
//	type    ::= ('rec' | 'forall' | 'exists') a '.' type | sum ('->' type)?
//	sum     ::= product ('+' product)*
//	product ::= tatom ('*' tatom)*
//	tatom   ::= 'num' | 'bool' | 'unit' | a | '(' type ')'
//
// let and letrec are desugared while parsing; see ast.Let and ast.LetRec.
package syntax

import (
	"fmt"
	"strconv"

	"github.com/vito/sysf/pkg/ast"
)

// ParseTerm parses a whole source text as a single term.
func ParseTerm(filename, src string) (ast.Term, error) {
	var e ast.Term
	err := parse(filename, src, func(p *Parser) {
		e = p.Term()
	})
	return e, err
}

// ParseType parses a whole source text as a single type.
func ParseType(filename, src string) (ast.Type, error) {
	var t ast.Type
	err := parse(filename, src, func(p *Parser) {
		t = p.Type()
	})
	return t, err
}

func parse(filename, src string, fn func(*Parser)) (err error) {
	toks, err := NewLexer(filename, src).Tokens()
	if err != nil {
		return err
	}
	p := &Parser{filename: filename, src: src, toks: toks}

	defer func() {
		if r := recover(); r != nil {
			bail, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = bail.err
		}
	}()

	fn(p)
	p.expectKind(EOF)
	return nil
}

// bailout unwinds the parser on the first error.
type bailout struct {
	err *Error
}

// Parser is a recursive descent parser over a token slice. Its methods
// panic with a bailout on error, which ParseTerm and ParseType recover.
type Parser struct {
	filename string
	src      string
	toks     []Token
	pos      int
}

func (p *Parser) peek() Token {
	return p.toks[p.pos]
}

func (p *Parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

// at reports whether the current token is the keyword or symbol text.
func (p *Parser) at(text string) bool {
	tok := p.peek()
	return (tok.Kind == KEYWORD || tok.Kind == SYMBOL) && tok.Text == text
}

func (p *Parser) accept(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(text string) Token {
	if !p.at(text) {
		p.fail(p.peek(), "expected %q, found %s", text, p.peek())
	}
	return p.next()
}

func (p *Parser) expectKind(kind TokenKind) Token {
	if p.peek().Kind != kind {
		p.fail(p.peek(), "expected %s, found %s", kind, p.peek())
	}
	return p.next()
}

func (p *Parser) fail(tok Token, format string, args ...any) {
	panic(bailout{&Error{
		Filename: p.filename,
		Line:     tok.Line,
		Column:   tok.Column,
		Length:   max(1, len(tok.Text)),
		Message:  fmt.Sprintf(format, args...),
		Source:   p.src,
	}})
}

func (p *Parser) ident() ast.Identifier {
	return ast.Identifier(p.expectKind(IDENT).Text)
}

func (p *Parser) side() ast.Side {
	tok := p.expectKind(IDENT)
	switch tok.Text {
	case "L":
		return ast.Left
	case "R":
		return ast.Right
	}
	p.fail(tok, "expected L or R, found %s", tok)
	return 0
}

// binding parses '(' x ':' type ')' '->'.
func (p *Parser) binding() (ast.Identifier, ast.Type) {
	p.expect("(")
	x := p.ident()
	p.expect(":")
	t := p.Type()
	p.expect(")")
	p.expect("->")
	return x, t
}

// Term parses a term.
func (p *Parser) Term() ast.Term {
	switch {
	case p.accept("fun"):
		x, t := p.binding()
		return ast.Lam{Bound: x, Annot: t, Body: p.Term()}

	case p.accept("fix"):
		x, t := p.binding()
		return ast.Fix{Bound: x, Annot: t, Body: p.Term()}

	case p.accept("tyfun"):
		a := p.ident()
		p.expect("->")
		return ast.TyLam{Bound: a, Body: p.Term()}

	case p.accept("if"):
		cond := p.Term()
		p.expect("then")
		then := p.Term()
		p.expect("else")
		return ast.If{Cond: cond, Then: then, Else: p.Term()}

	case p.at("let") || p.at("letrec"):
		recursive := p.next().Text == "letrec"
		x := p.ident()
		p.expect(":")
		t := p.Type()
		p.expect("=")
		def := p.Term()
		p.expect("in")
		body := p.Term()
		if recursive {
			return ast.LetRec(x, t, def, body)
		}
		return ast.Let(x, t, def, body)

	case p.accept("import"):
		p.expect("(")
		x := p.ident()
		p.expect(",")
		a := p.ident()
		p.expect(")")
		p.expect("=")
		mod := p.Term()
		p.expect("in")
		return ast.Import{ValueBound: x, TypeBound: a, Module: mod, Body: p.Term()}

	case p.accept("fold"):
		e := p.Term()
		p.expect("as")
		return ast.Fold{Term: e, Rec: p.Type()}

	case p.accept("inj"):
		e := p.Term()
		p.expect("=")
		side := p.side()
		p.expect("as")
		return ast.Inject{Term: e, Side: side, Sum: p.Type()}

	case p.accept("export"):
		e := p.Term()
		p.expect("without")
		witness := p.Type()
		p.expect("as")
		return ast.Export{Term: e, Witness: witness, Exists: p.Type()}
	}

	return p.or()
}

func (p *Parser) or() ast.Term {
	e := p.and()
	for p.accept("||") {
		e = ast.Or{Left: e, Right: p.and()}
	}
	return e
}

func (p *Parser) and() ast.Term {
	e := p.rel()
	for p.accept("&&") {
		e = ast.And{Left: e, Right: p.rel()}
	}
	return e
}

var relOps = map[string]ast.RelOp{"<": ast.Lt, ">": ast.Gt, "==": ast.Eq}

func (p *Parser) rel() ast.Term {
	e := p.add()
	if op, ok := relOps[p.peek().Text]; ok && p.peek().Kind == SYMBOL {
		p.next()
		e = ast.Relop{Op: op, Left: e, Right: p.add()}
		if _, chained := relOps[p.peek().Text]; chained && p.peek().Kind == SYMBOL {
			p.fail(p.peek(), "comparisons cannot be chained")
		}
	}
	return e
}

func (p *Parser) add() ast.Term {
	e := p.mul()
	for {
		switch {
		case p.accept("+"):
			e = ast.Addop{Op: ast.Add, Left: e, Right: p.mul()}
		case p.accept("-"):
			e = ast.Addop{Op: ast.Sub, Left: e, Right: p.mul()}
		default:
			return e
		}
	}
}

func (p *Parser) mul() ast.Term {
	e := p.app()
	for {
		switch {
		case p.accept("*"):
			e = ast.Mulop{Op: ast.Mul, Left: e, Right: p.app()}
		case p.accept("/"):
			e = ast.Mulop{Op: ast.Div, Left: e, Right: p.app()}
		default:
			return e
		}
	}
}

func (p *Parser) app() ast.Term {
	e := p.unary()
	for {
		switch {
		case p.accept("["):
			arg := p.Type()
			p.expect("]")
			e = ast.TyApp{Term: e, Arg: arg}
		case p.startsUnary():
			e = ast.App{Fn: e, Arg: p.unary()}
		default:
			return e
		}
	}
}

// startsUnary reports whether the current token can begin an argument.
func (p *Parser) startsUnary() bool {
	switch tok := p.peek(); tok.Kind {
	case IDENT, NUMBER:
		return true
	case KEYWORD:
		return tok.Text == "true" || tok.Text == "false" ||
			tok.Text == "case" || tok.Text == "unfold"
	case SYMBOL:
		return tok.Text == "("
	default:
		return false
	}
}

func (p *Parser) unary() ast.Term {
	if p.accept("unfold") {
		return ast.Unfold{Term: p.unary()}
	}
	return p.postfix()
}

func (p *Parser) postfix() ast.Term {
	e := p.atom()
	for p.accept(".") {
		e = ast.Project{Term: e, Side: p.side()}
	}
	return e
}

func (p *Parser) atom() ast.Term {
	tok := p.peek()
	switch {
	case tok.Kind == NUMBER:
		return p.number("")

	case p.at("-"):
		p.next()
		if p.peek().Kind != NUMBER {
			p.fail(p.peek(), "expected number after -, found %s", p.peek())
		}
		return p.number("-")

	case p.accept("true"):
		return ast.True{}

	case p.accept("false"):
		return ast.False{}

	case tok.Kind == IDENT:
		p.next()
		return ast.Var{Name: ast.Identifier(tok.Text)}

	case p.accept("("):
		if p.accept(")") {
			return ast.Unit{}
		}
		e := p.Term()
		if p.accept(",") {
			right := p.Term()
			p.expect(")")
			return ast.Pair{Left: e, Right: right}
		}
		p.expect(")")
		return e

	case p.accept("case"):
		scrutinee := p.Term()
		p.expect("{")
		p.arm("L")
		left := p.ident()
		p.expect(")")
		p.expect("->")
		leftArm := p.Term()
		p.expect("|")
		p.arm("R")
		right := p.ident()
		p.expect(")")
		p.expect("->")
		rightArm := p.Term()
		p.expect("}")
		return ast.Case{
			Scrutinee:  scrutinee,
			LeftBound:  left,
			LeftArm:    leftArm,
			RightBound: right,
			RightArm:   rightArm,
		}
	}

	p.fail(tok, "unexpected %s", tok)
	return nil
}

// arm parses the side label and opening parenthesis of a case arm.
func (p *Parser) arm(side string) {
	tok := p.expectKind(IDENT)
	if tok.Text != side {
		p.fail(tok, "expected %s arm, found %s", side, tok)
	}
	p.expect("(")
}

func (p *Parser) number(sign string) ast.Term {
	tok := p.next()
	n, err := strconv.ParseInt(sign+tok.Text, 10, 32)
	if err != nil {
		p.fail(tok, "number %s%s does not fit in 32 bits", sign, tok.Text)
	}
	return ast.Num{Value: int32(n)}
}

// Type parses a type.
func (p *Parser) Type() ast.Type {
	switch {
	case p.accept("rec"):
		a, body := p.quantified()
		return ast.TRec{Bound: a, Body: body}
	case p.accept("forall"):
		a, body := p.quantified()
		return ast.TForall{Bound: a, Body: body}
	case p.accept("exists"):
		a, body := p.quantified()
		return ast.TExists{Bound: a, Body: body}
	}

	t := p.sumType()
	if p.accept("->") {
		return ast.TFn{Arg: t, Ret: p.Type()}
	}
	return t
}

func (p *Parser) quantified() (ast.Identifier, ast.Type) {
	a := p.ident()
	p.expect(".")
	return a, p.Type()
}

func (p *Parser) sumType() ast.Type {
	t := p.productType()
	for p.accept("+") {
		t = ast.TSum{Left: t, Right: p.productType()}
	}
	return t
}

func (p *Parser) productType() ast.Type {
	t := p.typeAtom()
	for p.accept("*") {
		t = ast.TProduct{Left: t, Right: p.typeAtom()}
	}
	return t
}

func (p *Parser) typeAtom() ast.Type {
	tok := p.peek()
	switch {
	case p.accept("num"), p.accept("Num"):
		return ast.TNum{}
	case p.accept("bool"), p.accept("Bool"):
		return ast.TBool{}
	case p.accept("unit"), p.accept("Unit"):
		return ast.TUnit{}
	case tok.Kind == IDENT:
		p.next()
		return ast.TVar{Name: ast.Identifier(tok.Text)}
	case p.accept("("):
		t := p.Type()
		p.expect(")")
		return t
	}

	p.fail(tok, "expected a type, found %s", tok)
	return nil
}
