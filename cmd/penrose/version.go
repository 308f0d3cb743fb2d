package main

import (
	"fmt"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of penrose",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), penrose.Version)
				return
			}
			tui.PrintBanner(cmd.OutOrStdout(), penrose.Version)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
