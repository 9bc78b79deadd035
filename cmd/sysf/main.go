package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/ansi"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vito/sysf/pkg/ioctx"
	"github.com/vito/sysf/pkg/render"
	"github.com/vito/sysf/pkg/syntax"
	"github.com/vito/sysf/pkg/sysf"
)

// Config holds the application configuration
type Config struct {
	Debug    bool
	Mode     string
	Output   string
	MaxSteps int
	Color    string
}

var failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

func main() {
	var cfg Config
	rootCmd := newRootCmd(&cfg)

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			printError(w, cfg.Color, err)
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sysf [flags] [file]",
		Short: "System F interpreter",
		Long: `sysf type checks and evaluates programs in a small call-by-value
language with polymorphism, recursive types and existential modules.

The program is read from the given file, or from stdin when none is given.`,
		Example: `  # Evaluate a program
  sysf counter.sysf

  # Print the type and every reduction step
  sysf --mode very-verbose counter.sysf

  # Render the evaluation as a Graphviz graph
  sysf -m very-verbose -o graphviz counter.sysf | dot -Tsvg > steps.svg

  # Show the parsed program with de Bruijn indices
  echo 'fun (x : num) -> x' | sysf -m parse -o de-bruijn`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			opts, err := loadOptions(cmd, *cfg, file)
			if err != nil {
				return err
			}
			return run(cmd.Context(), file, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.Color, "color", "auto", "Color diagnostics: auto, always or never")
	rootCmd.Flags().StringVarP(&cfg.Mode, "mode", "m", sysf.Eval.String(), "Program mode: parse, eval, verbose or very-verbose")
	rootCmd.Flags().StringVarP(&cfg.Output, "output", "o", render.Simplified.String(), "Output format: full, simplified, de-bruijn or graphviz")
	rootCmd.Flags().IntVar(&cfg.MaxSteps, "max-steps", 0, "Give up after this many reduction steps (0 for no limit)")

	rootCmd.AddCommand(checkCmd(cfg))
	rootCmd.AddCommand(fmtCmd())
	rootCmd.AddCommand(serveCmd(cfg))

	return rootCmd
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

// loadOptions layers flags that were set explicitly over sysf.toml, found
// from the program's directory.
func loadOptions(cmd *cobra.Command, cfg Config, file string) (sysf.Options, error) {
	opts := sysf.Options{Mode: sysf.Eval, Output: render.Simplified}

	dir := "."
	if file != "" {
		dir = filepath.Dir(file)
	}
	configPath, config, err := sysf.FindProjectConfig(dir)
	if err != nil {
		return opts, err
	}
	if config != nil {
		slog.Debug("loaded project config", "path", configPath)
		if err := config.Apply(&opts); err != nil {
			return opts, fmt.Errorf("%s: %w", configPath, err)
		}
		if config.Color != nil && !cmd.Flags().Changed("color") {
			if *config.Color {
				cmd.Flags().Set("color", "always") //nolint:errcheck
			} else {
				cmd.Flags().Set("color", "never") //nolint:errcheck
			}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := sysf.ParseMode(cfg.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if flags.Changed("output") {
		output, err := render.ParseOutputMode(cfg.Output)
		if err != nil {
			return opts, err
		}
		opts.Output = output
	}
	if flags.Changed("max-steps") {
		opts.MaxSteps = cfg.MaxSteps
	}
	return opts, nil
}

func run(ctx context.Context, file string, opts sysf.Options) error {
	if file == "" {
		src, err := sysf.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		_, err = sysf.Run(ctx, src, opts)
		return err
	}
	_, err := sysf.RunFile(ctx, file, opts)
	return err
}

// printError shows parse errors with their source excerpt and everything
// else on one line.
func printError(w io.Writer, color string, err error) {
	var msg string
	var syntaxErr *syntax.Error
	var pipelineErr *sysf.Error
	if errors.As(err, &syntaxErr) && errors.As(err, &pipelineErr) {
		msg = failureStyle.Render(pipelineErr.Stage.String()+" error") + "\n" + syntaxErr.Highlight()
	} else {
		msg = failureStyle.Render(err.Error()) + "\n"
	}

	switch color {
	case "always":
		fmt.Fprint(w, msg)
	case "never":
		fmt.Fprint(w, ansi.Strip(msg))
	default:
		lipgloss.Fprint(w, msg)
	}
}
