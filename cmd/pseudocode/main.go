// Command pseudocode is the ambient CLI front-end over internal/interp:
// run, lex, and parse debugging entry points plus version information.
// It is not part of the embedding contract itself, only a thin shell
// around it.
package main

import (
	"fmt"
	"os"

	"github.com/aclevel/pseudocode/cmd/pseudocode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
