package rpc_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/server"
	"github.com/stretchr/testify/require"

	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/rpc"
)

func newClient(t *testing.T) *jrpc2.Client {
	t.Helper()
	loc := server.NewLocal(rpc.NewHandler(), nil)
	t.Cleanup(func() {
		_ = loc.Close()
	})
	return loc.Client
}

func requireCode(t *testing.T, err error, code jrpc2.Code, message string) {
	t.Helper()
	var rpcErr *jrpc2.Error
	require.True(t, errors.As(err, &rpcErr), "not an rpc error: %v", err)
	require.Equal(t, code, rpcErr.Code)
	require.Equal(t, message, rpcErr.Message)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	cli := newClient(t)

	var res rpc.CheckResult
	err := cli.CallResult(ctx, "check", rpc.Params{Source: "fun (x : num) -> x < 1"}, &res)
	require.NoError(t, err)
	require.Equal(t, "num -> bool", res.Type)

	err = cli.CallResult(ctx, "check", rpc.Params{Source: "tyfun a -> fun (x : a) -> x", Output: "de-bruijn"}, &res)
	require.NoError(t, err)
	require.Equal(t, "forall _ . 0 -> 0", res.Type)

	err = cli.CallResult(ctx, "check", rpc.Params{Source: "1 + true"}, &res)
	requireCode(t, err, rpc.TypeError, "Type error: type mismatch in +: expected num, found bool")

	err = cli.CallResult(ctx, "check", rpc.Params{Source: "1 +", Filename: "main.sysf"}, &res)
	requireCode(t, err, rpc.ParseError, "Parse error: main.sysf:1:4: unexpected end of input")
}

func TestEval(t *testing.T) {
	ctx := context.Background()
	cli := newClient(t)

	var res rpc.EvalResult
	err := cli.CallResult(ctx, "eval", rpc.Params{Source: `
		letrec fact : num -> num = fun (n : num) ->
		  if n == 0 then 1 else n * (fact (n - 1))
		in fact 6`}, &res)
	require.NoError(t, err)
	require.Equal(t, rpc.EvalResult{Type: "num", Value: "720"}, res)

	err = cli.CallResult(ctx, "eval", rpc.Params{Source: "1 / 0"}, &res)
	requireCode(t, err, rpc.EvalError, "Evaluation error: stuck in division by zero: 1 / 0")

	err = cli.CallResult(ctx, "eval", rpc.Params{
		Source:   "letrec loop : num -> num = fun (n : num) -> loop n in loop 0",
		MaxSteps: 5,
	}, &res)
	requireCode(t, err, rpc.EvalError, "Evaluation error: gave up after 5 steps: step limit exceeded")

	err = cli.CallResult(ctx, "eval", rpc.Params{Source: "1", Output: "svg"}, &res)
	var rpcErr *jrpc2.Error
	require.True(t, errors.As(err, &rpcErr))
	require.Equal(t, jrpc2.InvalidParams, rpcErr.Code)
}

func TestStep(t *testing.T) {
	ctx := context.Background()
	cli := newClient(t)

	var res rpc.StepResult
	err := cli.CallResult(ctx, "step", rpc.Params{Source: "(1 + 2) * 2"}, &res)
	require.NoError(t, err)
	require.Equal(t, rpc.StepResult{Term: "3 * 2"}, res)

	err = cli.CallResult(ctx, "step", rpc.Params{Source: "(1 + 2, 3)"}, &res)
	require.NoError(t, err)
	require.Equal(t, rpc.StepResult{Term: "(1 + 2, 3)", Done: true}, res)

	err = cli.CallResult(ctx, "step", rpc.Params{Source: "4 / 0"}, &res)
	requireCode(t, err, rpc.EvalError, "stuck in division by zero: 4 / 0")
}

func TestFormat(t *testing.T) {
	ctx := context.Background()
	cli := newClient(t)

	var res rpc.FormatResult
	err := cli.CallResult(ctx, "format", rpc.Params{Source: "((1)+(2*3))"}, &res)
	require.NoError(t, err)
	require.Equal(t, "1 + 2 * 3\n", res.Formatted)

	// formatting does not type check
	err = cli.CallResult(ctx, "format", rpc.Params{Source: "(x)  (y)"}, &res)
	require.NoError(t, err)
	require.Equal(t, "x y\n", res.Formatted)

	err = cli.CallResult(ctx, "format", rpc.Params{Source: "1 +", Filename: "f.sysf"}, &res)
	requireCode(t, err, rpc.ParseError, "Parse error: f.sysf:1:4: unexpected end of input")
}

func TestMissingParams(t *testing.T) {
	ctx := context.Background()
	cli := newClient(t)

	_, err := cli.Call(ctx, "check", nil)
	requireCode(t, err, jrpc2.InvalidParams, "missing parameters")
}

func TestServe(t *testing.T) {
	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	// the CLI serves on its own stdout
	ctx := ioctx.StdoutToContext(context.Background(), serverW)

	done := make(chan error, 1)
	go func() {
		done <- rpc.Serve(ctx, serverR, serverW)
	}()

	cli := jrpc2.NewClient(channel.Line(clientR, clientW), nil)
	var res rpc.EvalResult
	require.NoError(t, cli.CallResult(ctx, "eval", rpc.Params{Source: "1 + 2"}, &res))
	require.Equal(t, "3", res.Value)

	require.NoError(t, cli.Close())
	<-done
}

func TestServeWritesOnlyResponses(t *testing.T) {
	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	ctx := ioctx.StdoutToContext(context.Background(), serverW)

	done := make(chan error, 1)
	go func() {
		done <- rpc.Serve(ctx, serverR, serverW)
	}()

	lines := bufio.NewReader(clientR)
	for i, src := range []string{"1 + 2", "(fun (x : num) -> x) 4"} {
		for _, output := range []string{"simplified", "graphviz"} {
			req := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"eval","params":{"source":%q,"output":%q}}`+"\n",
				i+1, src, output)
			_, err := io.WriteString(clientW, req)
			require.NoError(t, err)

			line, err := lines.ReadString('\n')
			require.NoError(t, err)
			require.True(t, json.Valid([]byte(line)), "not a JSON line: %q", line)

			var resp struct {
				ID     int            `json:"id"`
				Result rpc.EvalResult `json:"result"`
			}
			require.NoError(t, json.Unmarshal([]byte(line), &resp))
			require.Equal(t, i+1, resp.ID)
			require.Equal(t, "num", strings.TrimSpace(firstLabel(resp.Result.Type)))
		}
	}

	require.NoError(t, clientW.Close())
	<-done
}

// firstLabel returns the label of the first node of a DOT graph, or s itself
// when s is not a graph.
func firstLabel(s string) string {
	_, rest, ok := strings.Cut(s, "[label=")
	if !ok {
		return s
	}
	label, _, _ := strings.Cut(rest, "]")
	return strings.Trim(label, `"`)
}
