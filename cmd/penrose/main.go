// Command penrose generates Penrose P3 rhombus tilings from an L-system and
// serves them over HTTP or MCP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/penrose/internal/cli"
)

func main() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if code := ctx.ExitCode(); code != 0 {
		os.Exit(code)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
