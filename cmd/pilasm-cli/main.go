package main

import (
	"os"

	"pilasm/cmd/pilasm-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
