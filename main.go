package main

import (
	"os"

	"github.com/sotola/codex-context/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
