package sysf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vito/sysf/pkg/render"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "sysf.toml"

// ProjectConfig represents a sysf.toml file. Empty fields leave the defaults
// alone.
type ProjectConfig struct {
	// Mode is the default mode name, like "verbose".
	Mode string `toml:"mode,omitempty"`

	// Output is the default output mode name, like "de-bruijn".
	Output string `toml:"output,omitempty"`

	// MaxSteps bounds evaluation. Zero means unbounded.
	MaxSteps int `toml:"max_steps,omitempty"`

	// Color forces colored diagnostics on or off. Unset means color only
	// when writing to a terminal.
	Color *bool `toml:"color,omitempty"`
}

// LoadProjectConfig loads a sysf.toml file from the given path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
	}
	return &config, nil
}

// FindProjectConfig searches for a sysf.toml file starting from dir and
// walking up to parent directories, stopping at a .git boundary. Returns
// the path and the parsed config, or ("", nil, nil) if not found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// Apply overrides opts with every field the config sets.
func (c *ProjectConfig) Apply(opts *Options) error {
	if c == nil {
		return nil
	}
	if c.Mode != "" {
		mode, err := ParseMode(c.Mode)
		if err != nil {
			return err
		}
		opts.Mode = mode
	}
	if c.Output != "" {
		output, err := render.ParseOutputMode(c.Output)
		if err != nil {
			return err
		}
		opts.Output = output
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.MaxSteps > 0 {
		opts.MaxSteps = c.MaxSteps
	}
	return nil
}
