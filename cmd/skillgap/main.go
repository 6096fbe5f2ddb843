// Package main is the skillgap CLI: the console tracker, the dashboard server and dataset tooling.
package main

import (
	"fmt"
	"os"

	"skill-gap/internal/config"
	"skill-gap/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "skillgap",
	Short:         "Compare your skill levels against synthetic job requirements",
	Long:          "skillgap generates synthetic job postings, collects your self-rated skill levels and reports the gap to a chosen job, on the console or in a browser dashboard.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initLogger(cfg config.Config) zerolog.Logger {
	return logger.Init(cfg.App.LogLevel, cfg.App.IsDevelopment())
}
