package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vito/sysf/pkg/ast"
	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/sysf"
)

func checkCmd(cfg *Config) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [flags] file...",
		Short: "Type check programs without running them",
		Long: `Type check each file and print its type.

Files are checked concurrently. The first failure is reported once every
file has been checked.`,
		Example: `  sysf check examples/*.sysf`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)
			ctx := cmd.Context()

			types := make([]ast.Type, len(args))
			eg, ctx := errgroup.WithContext(ctx)
			if jobs > 0 {
				eg.SetLimit(jobs)
			}
			for i, file := range args {
				eg.Go(func() error {
					t, err := sysf.CheckFile(ctx, file)
					if err != nil {
						return fmt.Errorf("%s: %w", file, err)
					}
					types[i] = t
					return nil
				})
			}
			err := eg.Wait()

			stdout := ioctx.StdoutFromContext(cmd.Context())
			for i, file := range args {
				if types[i] != nil {
					fmt.Fprintf(stdout, "%s: %s\n", file, types[i])
				}
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Check at most this many files at once (0 for no limit)")

	return cmd
}
