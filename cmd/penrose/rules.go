package main

import (
	"fmt"

	"github.com/aretw0/penrose/internal/cli"
	"github.com/aretw0/penrose/internal/presentation/graph"
	"github.com/aretw0/penrose/internal/presentation/tui"
	"github.com/aretw0/penrose/pkg/schema"
	"github.com/aretw0/penrose/pkg/tiling"
	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	var (
		mermaid bool
		export  string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the seed and production rules of a tiling",
		Long: `Prints the rule table. With --mermaid it outputs a Mermaid diagram (graph TD)
of which symbols each rule produces; with --export it writes a tiling file
that --tiling-file can load back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := cli.ResolveTiling(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case export != "":
				if err := schema.Enum(tiling.Formats...).Validate(export); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				data, err := tiling.Encode(t, tiling.Format(export))
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case mermaid:
				var overlay *graph.GraphOverlay
				if cmd.Flags().Changed("depth") {
					gen, err := cli.NewGenerator(cmd.Context(), a.cfg, a.logger)
					if err != nil {
						return err
					}
					seq, err := gen.Expanded(a.cfg.Depth)
					if err != nil {
						return err
					}
					overlay = &graph.GraphOverlay{Counts: seq.Histogram()}
				}
				_, err = fmt.Fprint(out, graph.GenerateMermaid(t, overlay))
				return err
			default:
				_, err = fmt.Fprint(out, render(out, tui.RulesMarkdown(t)))
				return err
			}
		},
	}

	f := cmd.Flags()
	f.BoolVar(&mermaid, "mermaid", false, "Print a Mermaid dependency graph")
	f.Int("depth", 4, "With --mermaid, annotate symbol counts at this depth")
	f.StringVar(&export, "export", "", "Export the tiling definition as yaml, toml or json")
	return cmd
}
