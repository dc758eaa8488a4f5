// Package main is the entry point for the loomtasks CLI.
package main

import (
	"os"

	"github.com/ellemenno/loomtasks/cmd/loomtasks/commands"
	"github.com/ellemenno/loomtasks/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
