// Package main provides the entry point for the hiremeplz onboarding API
// server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiremeplz",
	Short: "Freelancer onboarding API server",
	Long:  "hiremeplz runs a conversational onboarding flow that collects a freelancer profile, imports LinkedIn data, and scores the result.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
