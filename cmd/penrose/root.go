package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/internal/cli"
	"github.com/aretw0/penrose/internal/config"
	"github.com/aretw0/penrose/internal/presentation/tui"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration from the root command to its children.
type app struct {
	configFile string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "penrose",
		Short: "Penrose is a deterministic L-system tiling generator",
		Long: `Penrose expands a rhombus substitution grammar and walks the result with a
turtle, producing the line segments of a Penrose P3 tiling.

Configuration is read from flags, PENROSE_* environment variables and an
optional penrose.yaml or penrose.toml file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cli.CreateLogger(cfg.Debug)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default ./penrose.yaml or $PENROSE_CONFIG)")
	pf.Bool("debug", false, "Log generation passes to stderr")
	pf.String("tiling", domain.PenroseName, "Name of the tiling to generate")
	pf.String("tiling-file", "", "Load the tiling from a YAML, TOML or JSON file")
	pf.String("catalog", "", "Directory of tiling documents (Markdown frontmatter, YAML or JSON) to resolve --tiling from")
	pf.Int("max-depth", penrose.DefaultMaxDepth, "Depth above which a warning is logged")
	pf.Int("segment-budget", 0, "Reject generations that would emit more segments (0 disables)")
	pf.Bool("exact-passes", false, "Run depth rewrite passes instead of depth-1")

	cmd.AddCommand(
		newGenerateCmd(a),
		newStatsCmd(a),
		newRulesCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// render applies terminal Markdown styling when w is a TTY.
func render(w io.Writer, markdown string) string {
	if f, ok := w.(*os.File); ok {
		return tui.Render(f, markdown)
	}
	return markdown
}
