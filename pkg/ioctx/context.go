// Package ioctx carries the writers a run prints to in its context, so that
// the pipeline never touches os.Stdout directly.
package ioctx

import (
	"context"
	"io"
)

type stdoutKey struct{}
type stderrKey struct{}
type traceKey struct{}

func writerFrom(ctx context.Context, key any) io.Writer {
	w, ok := ctx.Value(key).(io.Writer)
	if !ok {
		return io.Discard
	}
	return w
}

// StdoutFromContext returns the writer for results, or io.Discard.
func StdoutFromContext(ctx context.Context) io.Writer {
	return writerFrom(ctx, stdoutKey{})
}

func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

// StderrFromContext returns the writer for diagnostics, or io.Discard.
func StderrFromContext(ctx context.Context) io.Writer {
	return writerFrom(ctx, stderrKey{})
}

func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey{}, w)
}

// TraceFromContext returns the writer for step-by-step evaluation traces.
// When none was set, traces go to stdout alongside the result.
func TraceFromContext(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(traceKey{}).(io.Writer); ok {
		return w
	}
	return StdoutFromContext(ctx)
}

func TraceToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, traceKey{}, w)
}
