package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies tokens.
type TokenKind int

const (
	EOF TokenKind = iota
	IDENT
	NUMBER
	KEYWORD
	SYMBOL
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case IDENT:
		return "identifier"
	case NUMBER:
		return "number"
	case KEYWORD:
		return "keyword"
	case SYMBOL:
		return "symbol"
	default:
		return "token"
	}
}

// Token is a lexeme with its position in the source.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%q", t.Text)
}

var keywords = map[string]bool{
	"fun": true, "fix": true, "tyfun": true,
	"if": true, "then": true, "else": true,
	"let": true, "letrec": true, "in": true,
	"true": true, "false": true,
	"inj": true, "as": true, "case": true,
	"fold": true, "unfold": true,
	"export": true, "without": true, "import": true,
	"rec": true, "forall": true, "exists": true,
	"num": true, "bool": true, "unit": true,
	"Num": true, "Bool": true, "Unit": true,
}

// Longest first, so that "->" wins over "-".
var symbols = []string{
	"->", "||", "&&", "==",
	"<", ">", "+", "-", "*", "/",
	"(", ")", "[", "]", "{", "}",
	",", ".", ":", "=", "|",
}

// Lexer splits source text into tokens.
type Lexer struct {
	filename string
	input    string
	pos      int
	line     int
	column   int
}

// NewLexer creates a lexer over input, which is reported as filename in
// errors.
func NewLexer(filename, input string) *Lexer {
	return &Lexer{filename: filename, input: input, line: 1, column: 1}
}

// Tokens lexes the whole input. The last token is always EOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}
	if l.pos >= len(l.input) {
		tok.Kind = EOF
		return tok, nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	switch {
	case isIdentStart(r):
		tok.Text = l.take(isIdentPart)
		tok.Kind = IDENT
		if keywords[tok.Text] {
			tok.Kind = KEYWORD
		}
		return tok, nil
	case isDigit(r):
		tok.Kind = NUMBER
		tok.Text = l.take(isDigit)
		return tok, nil
	}

	for _, sym := range symbols {
		if strings.HasPrefix(l.input[l.pos:], sym) {
			l.advance(len(sym))
			tok.Kind = SYMBOL
			tok.Text = sym
			return tok, nil
		}
	}

	return tok, &Error{
		Filename: l.filename,
		Line:     tok.Line,
		Column:   tok.Column,
		Length:   1,
		Message:  fmt.Sprintf("unexpected character %q", r),
		Source:   l.input,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch {
		case strings.HasPrefix(l.input[l.pos:], "//"):
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance(1)
			}
		default:
			r, size := utf8.DecodeRuneInString(l.input[l.pos:])
			if !unicode.IsSpace(r) {
				return
			}
			l.advance(size)
		}
	}
}

func (l *Lexer) take(pred func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !pred(r) {
			break
		}
		l.advance(size)
	}
	return l.input[start:l.pos]
}

// advance moves n bytes forward, tracking line and column.
func (l *Lexer) advance(n int) {
	for range n {
		switch c := l.input[l.pos]; {
		case c == '\n':
			l.line++
			l.column = 1
		case utf8.RuneStart(c):
			l.column++
		}
		l.pos++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '\''
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
