package main

import (
	"os"

	"github.com/vulpin/reopenwarn/internal/cli"
	"github.com/vulpin/reopenwarn/internal/logging"
)

// main is the entry point for the reopenwarn CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
