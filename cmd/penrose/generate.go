package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/penrose/internal/cli"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		output   string
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the line segments of a tiling",
		Long: `Expands the tiling to the requested depth and writes its segments.

Formats:
- json (default): full result with statistics and bounds
- yaml: same as json
- csv: one x1,y1,x2,y2 row per segment
- text: one space separated segment per line`,
		Example: `  penrose generate --depth 5 --length 10
  penrose generate --depth 6 --format csv --compress -o tiling.csv.zst`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := a.cfg.ValidateFormat(); err != nil {
				return err
			}
			gen, err := cli.NewGenerator(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}

			res, err := gen.Run(domain.Request{Depth: a.cfg.Depth, StepLength: a.cfg.Length})
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("failed to create output file: %w", createErr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			out, err := cli.OpenOutput(w, compress)
			if err != nil {
				return err
			}
			if err := cli.WriteResult(out, res, a.cfg.Format); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			a.logger.Info("Generated", "tiling", res.Tiling, "depth", a.cfg.Depth, "segments", len(res.Segments), "output", output)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("depth", 4, "Generation depth (minimum 2)")
	f.Float64("length", 10, "Length of each segment")
	f.String("format", cli.FormatJSON, "Output format: json, yaml, csv or text")
	f.StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	f.BoolVar(&compress, "compress", false, "Compress the output with zstd")
	return cmd
}
