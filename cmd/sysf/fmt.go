package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/render"
	"github.com/vito/sysf/pkg/sysf"
	"github.com/vito/sysf/pkg/syntax"
)

func fmtCmd() *cobra.Command {
	var (
		write bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [flags] path...",
		Short: "Format sysf source files",
		Long: `Format source files in the canonical style, with the fewest
parentheses that preserve the program's structure.

By default, fmt prints the formatted source to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.

Comments are not preserved.`,
		Example: `  # Format a file and print to stdout
  sysf fmt counter.sysf

  # Format every .sysf file in a directory in place
  sysf fmt -w ./examples`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := sourceFiles(args)
			if err != nil {
				return err
			}
			stdout := ioctx.StdoutFromContext(cmd.Context())
			for _, file := range files {
				if err := formatFile(stdout, file, write, list); err != nil {
					return fmt.Errorf("formatting %s: %w", file, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List files that would be formatted")

	return cmd
}

// sourceFiles expands directories to the .sysf files directly inside them.
func sourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(path, "*.sysf"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

func formatFile(stdout io.Writer, path string, write, list bool) error {
	source, err := sysf.ReadSource(path)
	if err != nil {
		return err
	}
	e, err := syntax.ParseTerm(path, source)
	if err != nil {
		return err
	}
	formatted := render.Term(e) + "\n"
	changed := source != formatted

	if list && !write {
		if changed {
			fmt.Fprintln(stdout, path)
		}
		return nil
	}

	if write {
		if changed {
			if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
				return err
			}
			if list {
				fmt.Fprintln(stdout, path)
			}
		}
		return nil
	}

	_, err = io.WriteString(stdout, formatted)
	return err
}
