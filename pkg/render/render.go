// Package render prints terms and types in each of the output modes the
// command line offers.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/kr/pretty"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/symbol"
)

// OutputMode selects how a tree is printed.
type OutputMode int

const (
	// Full dumps the tree structurally, every node and field spelled out.
	Full OutputMode = iota
	// Simplified prints the surface syntax.
	Simplified
	// DeBruijn prints the surface syntax of the canonical form, with bound
	// names replaced by indices.
	DeBruijn
	// Graphviz writes a DOT graph.
	Graphviz
)

var outputModeNames = []string{"Full", "Simplified", "DeBruijn", "Graphviz"}

func (m OutputMode) String() string {
	if m < 0 || int(m) >= len(outputModeNames) {
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
	return strcase.ToKebab(outputModeNames[m])
}

// OutputModes lists every mode, in order.
func OutputModes() []OutputMode {
	return []OutputMode{Full, Simplified, DeBruijn, Graphviz}
}

// ParseOutputMode accepts the names printed by OutputMode.String, in any case
// and with either dashes or underscores.
func ParseOutputMode(s string) (OutputMode, error) {
	want := strcase.ToKebab(s)
	for _, m := range OutputModes() {
		if m.String() == want {
			return m, nil
		}
	}
	names := make([]string, 0, len(outputModeNames))
	for _, m := range OutputModes() {
		names = append(names, m.String())
	}
	return 0, fmt.Errorf("unknown output mode %q (want one of %s)", s, strings.Join(names, ", "))
}

// Term prints e in surface syntax.
func Term(e ast.Term) string {
	return ast.FormatTerm(e)
}

// Type prints t in surface syntax.
func Type(t ast.Type) string {
	return ast.FormatType(t)
}

// Dump prints the Go structure of a tree.
func Dump(n ast.Node) string {
	return pretty.Sprint(n)
}

// Indexed prints the de Bruijn form of a tree in surface syntax. Indices
// print as bare numbers, so the result is for reading, not re-parsing.
func Indexed(n ast.Node) string {
	switch n := n.(type) {
	case ast.Term:
		return ast.FormatTerm(symbol.DeBruijnTerm(n))
	case ast.Type:
		return ast.FormatType(symbol.DeBruijnType(n))
	default:
		panic(fmt.Sprintf("unknown node %T", n))
	}
}

// Format prints n in the given mode. name labels the graph cluster in
// Graphviz mode and is ignored otherwise.
func Format(n ast.Node, mode OutputMode, name string) string {
	switch mode {
	case Full:
		return Dump(n)
	case Simplified:
		return n.String()
	case DeBruijn:
		return Indexed(n)
	case Graphviz:
		var buf bytes.Buffer
		// writes to a bytes.Buffer do not fail
		_ = Dot(&buf, n, name)
		return buf.String()
	default:
		panic(fmt.Sprintf("unknown output mode %d", int(mode)))
	}
}
