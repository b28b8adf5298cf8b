package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/rebatch/cmd/rebatch"
	"github.com/arthur-debert/rebatch/internal/version"
)

// Writes the rebatch(1) man page to stdout, or one page per command into
// the directory given as the only argument.
func main() {
	rootCmd := rebatch.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "REBATCH",
		Section: "1",
		Source:  "rebatch " + version.Version,
		Manual:  "rebatch manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
