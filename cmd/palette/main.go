// Package main is the entry point for the palette command.
package main

import (
	"fmt"
	"os"

	"github.com/opencode-ai/palette/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
