package eval

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/vito/sysf/pkg/ast"
)

// ErrStepLimit is returned by Run when a term has not reached a value within
// the configured number of steps.
var ErrStepLimit = errors.New("step limit exceeded")

// Evaluate steps e until it is a value. It does not return if e diverges.
func Evaluate(e ast.Term) ast.Term {
	for {
		next, ok := Step(e)
		if !ok {
			return e
		}
		e = next
	}
}

// Stats describes a completed run.
type Stats struct {
	Steps int
}

// TraceFunc observes each reduction, numbered from 1.
type TraceFunc func(step int, before, after ast.Term)

type runConfig struct {
	maxSteps int
	trace    TraceFunc
}

// Option configures Run.
type Option func(*runConfig)

// WithMaxSteps bounds the number of reductions. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(c *runConfig) {
		c.maxSteps = n
	}
}

// WithTrace calls fn after every reduction.
func WithTrace(fn TraceFunc) Option {
	return func(c *runConfig) {
		c.trace = fn
	}
}

// Run is Evaluate driven one step at a time, so that it can be bounded,
// traced and cancelled. On error the last term reached is returned along
// with the steps taken so far.
func Run(ctx context.Context, e ast.Term, opts ...Option) (ast.Term, Stats, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := slog.Default()
	debug := logger.Enabled(ctx, slog.LevelDebug)

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return e, stats, err
		}

		next, ok := Step(e)
		if !ok {
			logger.DebugContext(ctx, "evaluation completed", "steps", stats.Steps)
			return e, stats, nil
		}

		if cfg.maxSteps > 0 && stats.Steps >= cfg.maxSteps {
			return e, stats, errors.Wrapf(ErrStepLimit, "gave up after %d steps", stats.Steps)
		}

		stats.Steps++
		if debug {
			logger.DebugContext(ctx, "step", "n", stats.Steps, "term", next.String())
		}
		if cfg.trace != nil {
			cfg.trace(stats.Steps, e, next)
		}
		e = next
	}
}
