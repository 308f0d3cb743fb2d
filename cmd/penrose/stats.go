package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/penrose/internal/cli"
	"github.com/aretw0/penrose/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how the instruction string grows per pass",
		Long:  `Counts symbols pass by pass without interpreting them, so deep tilings are cheap to inspect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := cli.NewGenerator(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			stats, err := gen.Growth(a.cfg.Depth)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			md := tui.GrowthMarkdown(gen.Tiling().Name, a.cfg.Depth, stats)
			_, err = fmt.Fprint(out, render(out, md))
			return err
		},
	}

	cmd.Flags().Int("depth", 4, "Generation depth (minimum 2)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the statistics as JSON")
	return cmd
}
