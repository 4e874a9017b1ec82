package main

import (
	"fmt"
	"os"

	"github.com/temirov/invlint/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the invlint command-line application. Any error, including orphans found with
// --fail-on-warning, exits with status 1.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
