package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pubtree/cmd/pubtree"
	"github.com/arthur-debert/pubtree/pkg/style"
)

func main() {
	rootCmd := pubtree.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
