package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pubtree/cmd/pubtree"
	"github.com/arthur-debert/pubtree/internal/version"
)

func main() {
	rootCmd := pubtree.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PUBTREE",
		Section: "1",
		Source:  "pubtree " + version.Version,
		Manual:  "pubtree manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
