package ioctx_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vito/sysf/pkg/ioctx"
)

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, io.Discard, ioctx.StdoutFromContext(ctx))
	require.Equal(t, io.Discard, ioctx.StderrFromContext(ctx))
	require.Equal(t, io.Discard, ioctx.TraceFromContext(ctx))
}

func TestTraceFollowsStdout(t *testing.T) {
	var stdout, trace bytes.Buffer
	ctx := ioctx.StdoutToContext(context.Background(), &stdout)
	require.Same(t, &stdout, ioctx.TraceFromContext(ctx))

	ctx = ioctx.TraceToContext(ctx, &trace)
	require.Same(t, &trace, ioctx.TraceFromContext(ctx))
	require.Same(t, &stdout, ioctx.StdoutFromContext(ctx))
}
