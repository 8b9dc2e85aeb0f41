package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/rendering"
	"github.com/jonathan/resume-fitter/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume to LaTeX at its fitted sizing",
	Long: `Fits the resume (or uses --sizing) and writes a LaTeX document whose font sizes,
spacing and page geometry match the fitted configuration.`,
	RunE: runRender,
}

var (
	renderInput    string
	renderSizing   string
	renderPage     string
	renderTemplate string
	renderOutput   string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderSizing, "sizing", "s", "", "Path to SizingConfig JSON file (defaults to fitting the resume)")
	renderCmd.Flags().StringVar(&renderPage, "page", "", "Page size: a4 or letter")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Path to LaTeX template (defaults to the built-in one-page template)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output .tex file (defaults to stdout)")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, "", false)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page") {
		cfg.Page = renderPage
	}
	page, err := cfg.Geometry()
	if err != nil {
		return err
	}
	return renderDocument(renderInput, renderSizing, renderTemplate, renderOutput, page, cfg.FillFraction, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func renderDocument(input, sizingPath, templatePath, output string, page layout.PageGeometry, fill float64, stdout, stderr io.Writer) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	var sizing types.SizingConfig
	if sizingPath != "" {
		sizing, err = loadSizing(sizingPath)
		if err != nil {
			return err
		}
	} else {
		result, err := layout.NewFitter(layout.WithGeometry(page), layout.WithFillFraction(fill)).Fit(doc)
		if err != nil {
			return fmt.Errorf("failed to fit %s: %w", input, err)
		}
		if result.Overflows {
			_, _ = fmt.Fprintf(stderr, "Warning: %s is predicted to overflow the page by %.0fpx at the minimum font size\n",
				input, result.PredictedHeight-result.UsableHeight)
		}
		sizing = result.Config
	}

	tex, err := rendering.RenderLaTeX(doc, sizing, page, templatePath)
	if err != nil {
		return fmt.Errorf("failed to render LaTeX: %w", err)
	}

	if output == "" {
		_, err := io.WriteString(stdout, tex)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(tex), 0644); err != nil {
		return fmt.Errorf("failed to write LaTeX to output file: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "Rendered %s -> %s (body %.1fpx)\n", input, output, sizing.BodyFontSize)
	return nil
}
