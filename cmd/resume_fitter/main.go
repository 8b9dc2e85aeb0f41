// Package main provides the resume_fitter CLI: fit resumes onto one page, seed sizing from
// content metrics, estimate heights, and serve the same operations over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "resume_fitter",
	Short:        "One-page resume layout fitter",
	Long:         "Resume Fitter picks font sizes and spacing so a structured resume fills a single A4 or Letter page without overflowing.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
