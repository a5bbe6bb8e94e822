package main

import (
	"os"

	"github.com/mithun-t/expense-tracker/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
