// Package main is the entry point for the workspace CLI.
package main

import (
	"os"

	"github.com/thoreinstein/workspace/cmd/workspace/commands"
	"github.com/thoreinstein/workspace/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		commands.PrintError(os.Stderr, err)
	}
	os.Exit(errors.ExitCode(err))
}
