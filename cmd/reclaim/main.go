package main

import (
	"os"

	"github.com/reclaim-cli/reclaim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
