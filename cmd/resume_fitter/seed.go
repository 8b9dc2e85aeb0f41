package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/observability"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Pick a starting sizing from content volume alone",
	Long:  "Maps character and bullet counts to a body font tier without estimating height. Useful as a fast first guess before a full fit.",
	RunE:  runSeed,
}

var (
	seedInput   string
	seedOutput  string
	seedVerbose bool
)

func init() {
	seedCmd.Flags().StringVarP(&seedInput, "in", "i", "", "Path to resume JSON file (required)")
	seedCmd.Flags().StringVarP(&seedOutput, "out", "o", "", "Path to output SizingConfig JSON file (defaults to stdout)")
	seedCmd.Flags().BoolVarP(&seedVerbose, "verbose", "v", false, "Print content metrics to stderr")

	if err := seedCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	return seedDocument(seedInput, seedOutput, seedVerbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func seedDocument(input, output string, verbose bool, stdout, stderr io.Writer) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	sizing, err := layout.SeedFromMetrics(doc)
	if err != nil {
		return fmt.Errorf("failed to seed sizing: %w", err)
	}

	if verbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintMetrics(input, layout.ComputeMetrics(doc))
		printer.PrintSizingConfig("SEEDED SIZING", sizing)
	}

	return writeJSON(stdout, output, sizing)
}
