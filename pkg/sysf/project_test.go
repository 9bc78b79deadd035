package sysf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vito/sysf/pkg/render"
	"github.com/vito/sysf/pkg/sysf"
)

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	nested := filepath.Join(root, "examples", "modules")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, config, err := sysf.FindProjectConfig(nested)
	require.NoError(t, err)
	require.Empty(t, path)
	require.Nil(t, config)

	configPath := filepath.Join(root, sysf.ConfigFile)
	require.NoError(t, os.WriteFile(configPath, []byte(`
mode = "verbose"
output = "de-bruijn"
max_steps = 1000
color = false
`), 0644))

	path, config, err = sysf.FindProjectConfig(nested)
	require.NoError(t, err)
	require.Equal(t, configPath, path)
	require.Equal(t, "verbose", config.Mode)
	require.Equal(t, "de-bruijn", config.Output)
	require.Equal(t, 1000, config.MaxSteps)
	require.NotNil(t, config.Color)
	require.False(t, *config.Color)

	opts := sysf.Options{Mode: sysf.Eval, Output: render.Simplified}
	require.NoError(t, config.Apply(&opts))
	require.Equal(t, sysf.Verbose, opts.Mode)
	require.Equal(t, render.DeBruijn, opts.Output)
	require.Equal(t, 1000, opts.MaxSteps)
}

func TestFindProjectConfigStopsAtRepo(t *testing.T) {
	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, sysf.ConfigFile), []byte(`mode = "parse"`), 0644))
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	path, config, err := sysf.FindProjectConfig(repo)
	require.NoError(t, err)
	require.Empty(t, path)
	require.Nil(t, config)
}

func TestProjectConfigErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, sysf.ConfigFile)

	require.NoError(t, os.WriteFile(path, []byte(`mode = `), 0644))
	_, err := sysf.LoadProjectConfig(path)
	require.ErrorContains(t, err, "parsing "+path)

	require.NoError(t, os.WriteFile(path, []byte(`verbosity = 3`), 0644))
	_, err = sysf.LoadProjectConfig(path)
	require.ErrorContains(t, err, `unknown key "verbosity"`)

	config := &sysf.ProjectConfig{Mode: "loud"}
	var opts sysf.Options
	require.ErrorContains(t, config.Apply(&opts), `unknown mode "loud"`)

	config = &sysf.ProjectConfig{Output: "svg"}
	require.ErrorContains(t, config.Apply(&opts), `unknown output mode "svg"`)

	var none *sysf.ProjectConfig
	require.NoError(t, none.Apply(&opts))
}
