package main

import (
	"os"

	"github.com/tallyhq/tally/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
