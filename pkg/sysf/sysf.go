// Package sysf runs programs through the whole pipeline: parse, type check,
// evaluate, and print in the requested output mode.
package sysf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/check"
	"github.com/vito/sysf/pkg/eval"
	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/render"
	"github.com/vito/sysf/pkg/syntax"
)

// Stage names the part of the pipeline that failed.
type Stage int

const (
	ParseStage Stage = iota
	TypeStage
	EvalStage
	IOStage
)

func (s Stage) String() string {
	switch s {
	case ParseStage:
		return "Parse"
	case TypeStage:
		return "Type"
	case EvalStage:
		return "Evaluation"
	case IOStage:
		return "I/O"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Error is a pipeline failure, classified by stage.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configures a run.
type Options struct {
	Mode   Mode
	Output render.OutputMode
	// MaxSteps bounds evaluation. Zero means unbounded.
	MaxSteps int
	// Filename labels parse errors. Defaults to "<stdin>".
	Filename string
}

// Run parses, checks and evaluates src, printing to the context's stdout as
// the mode directs. It returns the final value, or the parsed program in
// Parse mode.
func Run(ctx context.Context, src string, opts Options) (ast.Term, error) {
	stdout := ioctx.StdoutFromContext(ctx)
	logger := slog.Default()

	e, err := ParseSource(src, opts.Filename)
	if err != nil {
		return nil, err
	}

	if opts.Mode == Parse {
		return e, emit(stdout, render.Format(e, opts.Output, "program"), opts.Output)
	}

	t, err := check.TypeCheck(e)
	if err != nil {
		return nil, &Error{Stage: TypeStage, Err: err}
	}
	logger.DebugContext(ctx, "type check completed", "type", t.String())

	if opts.Mode >= Verbose && opts.Output != render.Graphviz {
		if err := emit(stdout, render.Format(t, opts.Output, ""), opts.Output); err != nil {
			return nil, err
		}
	}

	if opts.Output == render.Graphviz {
		return runGraph(ctx, e, opts)
	}

	evalOpts := []eval.Option{eval.WithMaxSteps(opts.MaxSteps)}
	if opts.Mode == VeryVerbose {
		trace := ioctx.TraceFromContext(ctx)
		evalOpts = append(evalOpts, eval.WithTrace(func(_ int, before, after ast.Term) {
			fmt.Fprintf(trace, "stepped: %s |-> %s\n",
				render.Format(before, opts.Output, ""),
				render.Format(after, opts.Output, ""))
		}))
	}

	result, err := Evaluate(ctx, e, evalOpts...)
	if err != nil {
		return nil, err
	}
	return result, emit(stdout, render.Format(result, opts.Output, ""), opts.Output)
}

// runGraph evaluates e, writing one graph cluster per step in VeryVerbose
// mode and a final cluster for the result. Nothing is written unless
// evaluation finishes.
func runGraph(ctx context.Context, e ast.Term, opts Options) (ast.Term, error) {
	var buf bytes.Buffer
	g := render.NewGraph(&buf)

	evalOpts := []eval.Option{eval.WithMaxSteps(opts.MaxSteps)}
	if opts.Mode == VeryVerbose {
		evalOpts = append(evalOpts, eval.WithTrace(func(step int, before, _ ast.Term) {
			_ = g.Cluster(fmt.Sprintf("step%d", step), before)
		}))
	}

	result, err := Evaluate(ctx, e, evalOpts...)
	if err != nil {
		return nil, err
	}
	if err := g.Cluster("last", result); err != nil {
		return nil, &Error{Stage: IOStage, Err: err}
	}
	if err := g.Close(); err != nil {
		return nil, &Error{Stage: IOStage, Err: err}
	}
	if _, err := buf.WriteTo(ioctx.StdoutFromContext(ctx)); err != nil {
		return nil, &Error{Stage: IOStage, Err: err}
	}
	return result, nil
}

// Evaluate runs e without printing anything, turning stuck terms into
// evaluation errors.
func Evaluate(ctx context.Context, e ast.Term, opts ...eval.Option) (result ast.Term, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, ok := r.(*eval.Stuck)
			if !ok {
				panic(r)
			}
			result, err = nil, &Error{Stage: EvalStage, Err: s}
		}
	}()

	result, stats, err := eval.Run(ctx, e, opts...)
	if err != nil {
		return nil, &Error{Stage: EvalStage, Err: err}
	}
	slog.Default().DebugContext(ctx, "evaluated", "steps", stats.Steps)
	return result, nil
}

// Check parses and type checks src without evaluating it.
func Check(ctx context.Context, src string, filename string) (ast.Type, error) {
	e, err := ParseSource(src, filename)
	if err != nil {
		return nil, err
	}
	t, err := check.TypeCheck(e)
	if err != nil {
		return nil, &Error{Stage: TypeStage, Err: err}
	}
	slog.Default().DebugContext(ctx, "type check completed", "file", filename, "type", t.String())
	return t, nil
}

// RunFile reads and runs the program at path.
func RunFile(ctx context.Context, path string, opts Options) (ast.Term, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	opts.Filename = path
	return Run(ctx, src, opts)
}

// CheckFile reads and type checks the program at path.
func CheckFile(ctx context.Context, path string) (ast.Type, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return Check(ctx, src, path)
}

// ReadSource reads a program, classifying failures as I/O errors.
func ReadSource(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Stage: IOStage, Err: errors.Wrapf(err, "reading %s", path)}
	}
	return string(src), nil
}

// ReadAll reads a program from r, such as stdin.
func ReadAll(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", &Error{Stage: IOStage, Err: errors.Wrap(err, "reading input")}
	}
	return string(src), nil
}

// ParseSource parses a program, classifying failures as parse errors. An empty
// filename labels errors "<stdin>".
func ParseSource(src, filename string) (ast.Term, error) {
	if filename == "" {
		filename = "<stdin>"
	}
	e, err := syntax.ParseTerm(filename, src)
	if err != nil {
		return nil, &Error{Stage: ParseStage, Err: err}
	}
	return e, nil
}

// emit prints one rendered tree. Graphviz output already ends in a newline.
func emit(w io.Writer, s string, output render.OutputMode) error {
	if output != render.Graphviz {
		s += "\n"
	}
	if _, err := io.WriteString(w, s); err != nil {
		return &Error{Stage: IOStage, Err: err}
	}
	return nil
}
