// Package main provides the entry point for the defrec CLI.
package main

import (
	"os"

	"github.com/defrec/defrec/cmd/defrec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
