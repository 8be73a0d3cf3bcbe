// Package main provides the entry point for the Package Express quote tool.
//
// Package Express prompts for a package's weight and dimensions on standard
// input, validates them against the shipping limits and prints an estimated
// shipping cost on standard output.
//
// Usage:
//
//	packagexpress [--verbose] [--log-format text|json|logfmt]
//	packagexpress version [--output text|json]
//
// For detailed usage information, run: packagexpress --help
package main

import (
	"fmt"
	"os"

	"packagexpress/cmd"
	"packagexpress/internal/errors"
)

// main runs the CLI and maps errors to exit codes.
// A package that exceeds a limit is a normal ending and exits 0.
func main() {
	if err := cmd.Execute(); err != nil {
		if quoteErr, ok := err.(*errors.QuoteError); ok {
			fmt.Fprint(os.Stderr, errors.FormatErrorForUser(quoteErr))
			os.Exit(errors.GetExitCode(quoteErr))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
