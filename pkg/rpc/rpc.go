// Package rpc serves the pipeline over JSON-RPC 2.0, one request per line.
//
// Methods:
//
//	check  {source, filename}                  -> {type}
//	eval   {source, filename, output, max_steps} -> {type, value}
//	step   {source, filename, output}           -> {term, done}
//	format {source, filename}                  -> {formatted}
package rpc

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/check"
	"github.com/vito/sysf/pkg/eval"
	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/render"
	"github.com/vito/sysf/pkg/sysf"
	"github.com/vito/sysf/pkg/syntax"
)

// Error codes for pipeline failures, outside the range reserved by JSON-RPC.
const (
	ParseError jrpc2.Code = 1
	TypeError  jrpc2.Code = 2
	EvalError  jrpc2.Code = 3
)

// Params is the request shape shared by every method.
type Params struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
	// Output names a render.OutputMode. Defaults to "simplified".
	Output   string `json:"output,omitempty"`
	MaxSteps int    `json:"max_steps,omitempty"`
}

type CheckResult struct {
	Type string `json:"type"`
}

type EvalResult struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type StepResult struct {
	Term string `json:"term"`
	// Done is set when the term was already a value.
	Done bool `json:"done"`
}

type FormatResult struct {
	Formatted string `json:"formatted"`
}

// NewHandler returns the method table.
func NewHandler() handler.Map {
	return handler.Map{
		"check":  handleCheck,
		"eval":   handleEval,
		"step":   handleStep,
		"format": handleFormat,
	}
}

// Serve answers requests read from r on w until r is exhausted or ctx is
// cancelled. Handlers never print; w carries only responses.
func Serve(ctx context.Context, r io.Reader, w io.WriteCloser) error {
	logger := slog.Default()
	ctx = ioctx.StdoutToContext(ctx, io.Discard)
	srv := jrpc2.NewServer(NewHandler(), &jrpc2.ServerOptions{
		Logger:     func(text string) { logger.Debug(text) },
		NewContext: func() context.Context { return ctx },
	})
	srv.Start(channel.Line(r, w))

	stop := context.AfterFunc(ctx, srv.Stop)
	defer stop()

	logger.InfoContext(ctx, "rpc server started")
	err := srv.Wait()
	logger.InfoContext(ctx, "rpc server closed", "error", err)
	return err
}

func params(req *jrpc2.Request) (Params, render.OutputMode, error) {
	var p Params
	if !req.HasParams() {
		return p, 0, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}
	if err := req.UnmarshalParams(&p); err != nil {
		return p, 0, err
	}
	output := render.Simplified
	if p.Output != "" {
		var err error
		output, err = render.ParseOutputMode(p.Output)
		if err != nil {
			return p, 0, jrpc2.Errorf(jrpc2.InvalidParams, "%v", err)
		}
	}
	return p, output, nil
}

// program parses and type checks the request's source once for a handler.
func program(ctx context.Context, p Params) (ast.Term, ast.Type, error) {
	e, err := sysf.ParseSource(p.Source, p.Filename)
	if err != nil {
		return nil, nil, rpcError(err)
	}
	t, err := check.TypeCheck(e)
	if err != nil {
		return nil, nil, rpcError(&sysf.Error{Stage: sysf.TypeStage, Err: err})
	}
	slog.Default().DebugContext(ctx, "type check completed", "file", p.Filename, "type", t.String())
	return e, t, nil
}

func handleCheck(ctx context.Context, req *jrpc2.Request) (any, error) {
	p, output, err := params(req)
	if err != nil {
		return nil, err
	}
	_, t, err := program(ctx, p)
	if err != nil {
		return nil, err
	}
	return CheckResult{Type: render.Format(t, output, "type")}, nil
}

func handleEval(ctx context.Context, req *jrpc2.Request) (any, error) {
	p, output, err := params(req)
	if err != nil {
		return nil, err
	}
	e, t, err := program(ctx, p)
	if err != nil {
		return nil, err
	}
	result, err := sysf.Evaluate(ctx, e, eval.WithMaxSteps(p.MaxSteps))
	if err != nil {
		return nil, rpcError(err)
	}
	return EvalResult{
		Type:  render.Format(t, output, "type"),
		Value: render.Format(result, output, "last"),
	}, nil
}

func handleStep(ctx context.Context, req *jrpc2.Request) (any, error) {
	p, output, err := params(req)
	if err != nil {
		return nil, err
	}
	e, _, err := program(ctx, p)
	if err != nil {
		return nil, err
	}
	next, ok, err := step(e)
	if err != nil {
		return nil, rpcError(err)
	}
	return StepResult{Term: render.Format(next, output, "next"), Done: !ok}, nil
}

func handleFormat(ctx context.Context, req *jrpc2.Request) (any, error) {
	p, _, err := params(req)
	if err != nil {
		return nil, err
	}
	e, err := sysf.ParseSource(p.Source, p.Filename)
	if err != nil {
		return nil, rpcError(err)
	}
	return FormatResult{Formatted: render.Term(e) + "\n"}, nil
}

func step(e ast.Term) (next ast.Term, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, isStuck := r.(*eval.Stuck)
			if !isStuck {
				panic(r)
			}
			err = s
		}
	}()
	next, ok = eval.Step(e)
	return next, ok, nil
}

// rpcError assigns a pipeline failure its error code.
func rpcError(err error) error {
	var stuck *eval.Stuck
	var syntaxErr *syntax.Error
	var pipelineErr *sysf.Error
	switch {
	case errors.As(err, &stuck):
		return jrpc2.Errorf(EvalError, "%v", err)
	case errors.As(err, &syntaxErr):
		return jrpc2.Errorf(ParseError, "%v", err)
	case errors.As(err, &pipelineErr):
		switch pipelineErr.Stage {
		case sysf.ParseStage:
			return jrpc2.Errorf(ParseError, "%v", err)
		case sysf.TypeStage:
			return jrpc2.Errorf(TypeError, "%v", err)
		case sysf.EvalStage:
			return jrpc2.Errorf(EvalError, "%v", err)
		}
	}
	return err
}
