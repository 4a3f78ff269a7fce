// Package main is the entry point for the reldate application.
package main

import (
	"os"

	"github.com/jmylchreest/reldate/cmd/reldate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
