package main

import (
	"fmt"
	"io"
	"math"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Predict the rendered height of a resume under a given sizing",
	Long:  "Runs the height estimator once for a caller-supplied SizingConfig and reports the predicted height and page fill.",
	RunE:  runEstimate,
}

var (
	estimateInput  string
	estimateSizing string
	estimatePage   string
	estimateOutput string
)

func init() {
	estimateCmd.Flags().StringVarP(&estimateInput, "in", "i", "", "Path to resume JSON file (required)")
	estimateCmd.Flags().StringVarP(&estimateSizing, "sizing", "s", "", "Path to SizingConfig JSON file (required)")
	estimateCmd.Flags().StringVar(&estimatePage, "page", "", "Page size: a4 or letter (defaults to RESUME_FITTER_PAGE or a4)")
	estimateCmd.Flags().StringVarP(&estimateOutput, "out", "o", "", "Path to output estimate JSON file (defaults to stdout)")

	if err := estimateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := estimateCmd.MarkFlagRequired("sizing"); err != nil {
		panic(fmt.Sprintf("failed to mark sizing flag as required: %v", err))
	}

	rootCmd.AddCommand(estimateCmd)
}

// heightEstimate is the output of the estimate command
type heightEstimate struct {
	Page            string  `json:"page"`
	PredictedHeight float64 `json:"predicted_height"`
	UsableHeight    float64 `json:"usable_height"`
	FillPercentage  float64 `json:"fill_percentage"`
	Overflows       bool    `json:"overflows"`
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, "", false)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page") {
		cfg.Page = estimatePage
	}
	return estimateDocument(estimateInput, estimateSizing, cfg.Page, estimateOutput, cmd.OutOrStdout())
}

func estimateDocument(input, sizingPath, pageName, output string, stdout io.Writer) error {
	page, err := layout.PageByName(pageName)
	if err != nil {
		return err
	}

	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	sizing, err := loadSizing(sizingPath)
	if err != nil {
		return err
	}

	predicted := layout.NewEstimator(page).EstimateHeight(doc, sizing)
	usable := page.UsableHeight()

	return writeJSON(stdout, output, heightEstimate{
		Page:            page.Name,
		PredictedHeight: predicted,
		UsableHeight:    usable,
		FillPercentage:  math.Round(predicted/usable*1000) / 10,
		Overflows:       predicted > usable,
	})
}
