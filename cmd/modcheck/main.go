// Package main is the entry point for the modcheck CLI.
package main

import (
	"os"

	"github.com/thoreinstein/modcheck/cmd/modcheck/commands"
	"github.com/thoreinstein/modcheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		commands.PrintError(os.Stderr, err)
	}
	os.Exit(errors.ExitCode(err))
}
