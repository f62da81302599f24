package main

import (
	"fmt"
	"os"

	"gypsumplanner/cmd/planner/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
