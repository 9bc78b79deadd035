package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vito/sysf/pkg/ast"
)

// Graph writes a Graphviz digraph holding one cluster per tree. Node ids are
// numbered across the whole graph, so clusters never share a node.
type Graph struct {
	w    io.Writer
	next int
	err  error
}

// NewGraph starts a digraph on w.
func NewGraph(w io.Writer) *Graph {
	g := &Graph{w: w}
	g.printf("digraph Program {\n")
	return g
}

// Cluster adds n to the graph as a subgraph labeled name.
func (g *Graph) Cluster(name string, n ast.Node) error {
	g.printf("  subgraph cluster_%s {\n", name)
	g.printf("    label=%s;\n", strconv.Quote(name))
	g.node(n)
	g.printf("  }\n")
	return g.err
}

// Close ends the digraph. It returns the first write error, if any.
func (g *Graph) Close() error {
	g.printf("}\n")
	return g.err
}

// Dot writes a complete graph of a single tree.
func Dot(w io.Writer, n ast.Node, name string) error {
	g := NewGraph(w)
	if err := g.Cluster(name, n); err != nil {
		return err
	}
	return g.Close()
}

func (g *Graph) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

func (g *Graph) node(n any) string {
	id := fmt.Sprintf("n%d", g.next)
	g.next++

	label, kids := describe(n)
	g.printf("    %s [label=%s];\n", id, strconv.Quote(label))
	for _, kid := range kids {
		child := g.node(kid.node)
		g.printf("    %s -> %s [label=%s];\n", id, child, strconv.Quote(kid.role))
	}
	return id
}

type child struct {
	role string
	node any
}

func describe(n any) (string, []child) {
	switch n := n.(type) {
	case ast.Identifier:
		return string(n), nil

	case ast.TNum, ast.TBool, ast.TUnit, ast.TVar:
		return n.(ast.Type).String(), nil
	case ast.TFn:
		return "->", []child{{"arg", n.Arg}, {"ret", n.Ret}}
	case ast.TProduct:
		return "*", []child{{"left", n.Left}, {"right", n.Right}}
	case ast.TSum:
		return "+", []child{{"left", n.Left}, {"right", n.Right}}
	case ast.TRec:
		return "rec", []child{{"bound", n.Bound}, {"body", n.Body}}
	case ast.TForall:
		return "forall", []child{{"bound", n.Bound}, {"body", n.Body}}
	case ast.TExists:
		return "exists", []child{{"bound", n.Bound}, {"body", n.Body}}

	case ast.Num:
		return strconv.FormatInt(int64(n.Value), 10), nil
	case ast.True, ast.False, ast.Unit, ast.Var:
		return n.(ast.Term).String(), nil
	case ast.Addop:
		return n.Op.String(), []child{{"left", n.Left}, {"right", n.Right}}
	case ast.Mulop:
		return n.Op.String(), []child{{"left", n.Left}, {"right", n.Right}}
	case ast.Relop:
		return n.Op.String(), []child{{"left", n.Left}, {"right", n.Right}}
	case ast.And:
		return "&&", []child{{"left", n.Left}, {"right", n.Right}}
	case ast.Or:
		return "||", []child{{"left", n.Left}, {"right", n.Right}}
	case ast.If:
		return "if", []child{{"cond", n.Cond}, {"then", n.Then}, {"else", n.Else}}
	case ast.Lam:
		return "fun", []child{{"bound", n.Bound}, {"annot", n.Annot}, {"body", n.Body}}
	case ast.Fix:
		return "fix", []child{{"bound", n.Bound}, {"annot", n.Annot}, {"body", n.Body}}
	case ast.App:
		return "app", []child{{"fn", n.Fn}, {"arg", n.Arg}}
	case ast.Pair:
		return "pair", []child{{"left", n.Left}, {"right", n.Right}}
	case ast.Project:
		return "." + n.Side.String(), []child{{"term", n.Term}}
	case ast.Inject:
		return "inj " + n.Side.String(), []child{{"term", n.Term}, {"sum", n.Sum}}
	case ast.Case:
		return "case", []child{
			{"scrutinee", n.Scrutinee},
			{"L", n.LeftBound}, {"L arm", n.LeftArm},
			{"R", n.RightBound}, {"R arm", n.RightArm},
		}
	case ast.TyLam:
		return "tyfun", []child{{"bound", n.Bound}, {"body", n.Body}}
	case ast.TyApp:
		return "tyapp", []child{{"term", n.Term}, {"arg", n.Arg}}
	case ast.Fold:
		return "fold", []child{{"term", n.Term}, {"rec", n.Rec}}
	case ast.Unfold:
		return "unfold", []child{{"term", n.Term}}
	case ast.Export:
		return "export", []child{{"term", n.Term}, {"witness", n.Witness}, {"exists", n.Exists}}
	case ast.Import:
		return "import", []child{
			{"value", n.ValueBound}, {"type", n.TypeBound},
			{"module", n.Module}, {"body", n.Body},
		}
	default:
		panic(fmt.Sprintf("unknown node %T", n))
	}
}
