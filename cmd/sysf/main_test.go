package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/sysf"
)

// project creates a directory bounded by .git holding the given files.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cfg Config
	cmd := newRootCmd(&cfg)
	cmd.SetArgs(args)

	var stdout bytes.Buffer
	ctx := ioctx.StdoutToContext(context.Background(), &stdout)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), err
}

func TestRun(t *testing.T) {
	dir := project(t, map[string]string{
		"main.sysf": "(fun (x : num) -> x * x) 7",
	})
	file := filepath.Join(dir, "main.sysf")

	out, err := execute(t, file)
	require.NoError(t, err)
	require.Equal(t, "49\n", out)

	out, err = execute(t, "--mode", "verbose", file)
	require.NoError(t, err)
	require.Equal(t, "num\n49\n", out)

	out, err = execute(t, "-m", "parse", "-o", "de-bruijn", file)
	require.NoError(t, err)
	require.Equal(t, "(fun (_ : num) -> 0 * 0) 7\n", out)

	_, err = execute(t, "-m", "loud", file)
	require.ErrorContains(t, err, `unknown mode "loud"`)
}

func TestProjectConfig(t *testing.T) {
	dir := project(t, map[string]string{
		"sysf.toml": "mode = \"verbose\"\nmax_steps = 3\n",
		"loop.sysf": "letrec loop : num -> num = fun (n : num) -> loop n in loop 0",
		"sum.sysf":  "1 + 2",
	})

	out, err := execute(t, filepath.Join(dir, "sum.sysf"))
	require.NoError(t, err)
	require.Equal(t, "num\n3\n", out)

	// flags override the config
	out, err = execute(t, "--mode", "eval", filepath.Join(dir, "sum.sysf"))
	require.NoError(t, err)
	require.Equal(t, "3\n", out)

	_, err = execute(t, filepath.Join(dir, "loop.sysf"))
	require.ErrorContains(t, err, "gave up after 3 steps")

	_, err = execute(t, "--max-steps", "0", "-m", "eval", filepath.Join(dir, "sum.sysf"))
	require.NoError(t, err)
}

func TestCheck(t *testing.T) {
	dir := project(t, map[string]string{
		"a.sysf": "fun (x : num) -> x == 0",
		"b.sysf": "tyfun a -> fun (x : a) -> x",
		"c.sysf": "1 + true",
	})
	a := filepath.Join(dir, "a.sysf")
	b := filepath.Join(dir, "b.sysf")
	c := filepath.Join(dir, "c.sysf")

	out, err := execute(t, "check", a, b)
	require.NoError(t, err)
	require.Equal(t, a+": num -> bool\n"+b+": forall a . a -> a\n", out)

	out, err = execute(t, "check", "-j", "1", a, c)
	require.EqualError(t, err, c+": Type error: type mismatch in +: expected num, found bool")
	require.Equal(t, a+": num -> bool\n", out)
}

func TestFmt(t *testing.T) {
	dir := project(t, map[string]string{
		"messy.sysf": "((1)   +(2*3))",
		"tidy.sysf":  "1 + 2 * 3\n",
	})
	messy := filepath.Join(dir, "messy.sysf")

	out, err := execute(t, "fmt", messy)
	require.NoError(t, err)
	require.Equal(t, "1 + 2 * 3\n", out)

	out, err = execute(t, "fmt", "-l", dir)
	require.NoError(t, err)
	require.Equal(t, messy+"\n", out)

	_, err = execute(t, "fmt", "-w", dir)
	require.NoError(t, err)
	content, err := os.ReadFile(messy)
	require.NoError(t, err)
	require.Equal(t, "1 + 2 * 3\n", string(content))
}

func TestPrintError(t *testing.T) {
	_, err := sysf.Run(context.Background(), "let x : num = 1 in\nx +", sysf.Options{Filename: "main.sysf"})
	require.Error(t, err)

	var buf bytes.Buffer
	printError(&buf, "never", err)
	require.Equal(t, "Parse error\n"+
		"Error: unexpected end of input\n"+
		"  --> main.sysf:2:4\n"+
		"     |\n"+
		"   1 | let x : num = 1 in\n"+
		"   2 | x +\n"+
		"          ^\n"+
		"     |\n", buf.String())

	buf.Reset()
	printError(&buf, "always", errors.New("boom"))
	require.Equal(t, "boom\n", ansi.Strip(buf.String()))
}
