package main

import (
	"fmt"
	"os"

	"github.com/seedworks/enrich/cmd/cli"
)

const failureExitCodeConstant = 1

// main runs the enrichment CLI and maps execution failures to a non-zero exit code.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintln(os.Stderr, executionError)
	os.Exit(failureExitCodeConstant)
}
