package main

import (
	"fmt"
	"os"

	"github.com/omarchy-fork/omacustom/cmd/omacustom"
	"github.com/omarchy-fork/omacustom/pkg/style"
)

func main() {
	rootCmd := omacustom.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
