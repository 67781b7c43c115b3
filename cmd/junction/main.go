package main

import (
	"os"

	"junction/cmd/junction/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
