// Package main provides the entry point for the people matcher HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_api",
	Short: "People Matcher HTTP API Server",
	Long:  "People Matcher finds candidates whose work history resembles an ideal profile, using company-name normalization, ordered career-path matching and hybrid scoring over a PostgreSQL profile store.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
