package main

import (
	"os"

	"github.com/spigell/carmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
