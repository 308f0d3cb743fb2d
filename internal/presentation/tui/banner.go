package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`  _ __   ___ _ __  _ __ ___  ___  ___ `,
	` | '_ \ / _ \ '_ \| '__/ _ \/ __|/ _ \`,
	` | |_) |  __/ | | | | | (_) \__ \  __/`,
	` | .__/ \___|_| |_|_|  \___/|___/\___|`,
	` |_|                                  `,
}

// Warm gold to rose, echoing the two rhombus colours of a P3 tiling.
var bannerColors = []string{"#fbbf24", "#f59e0b", "#f97316", "#f43f5e", "#e11d48"}

// PrintBanner writes the ASCII art banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, termenv.String("  L-system rhombus tiling generator v"+version).Faint())
	fmt.Fprintln(w)
}
