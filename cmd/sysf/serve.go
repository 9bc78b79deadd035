package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vito/sysf/pkg/rpc"
)

func serveCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve check, eval, step and format over JSON-RPC on stdio",
		Long: `Serve JSON-RPC 2.0 requests read from stdin, one per line, and write
responses to stdout. Logs go to stderr.`,
		Example: `  echo '{"jsonrpc":"2.0","id":1,"method":"eval","params":{"source":"1 + 2"}}' | sysf serve`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)
			return rpc.Serve(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
}
