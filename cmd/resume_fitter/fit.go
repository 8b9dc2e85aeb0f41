package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/resume-fitter/internal/config"
	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/observability"
	"github.com/jonathan/resume-fitter/internal/schemas"
	"github.com/jonathan/resume-fitter/internal/types"
	"github.com/jonathan/resume-fitter/internal/validation"
	schemafiles "github.com/jonathan/resume-fitter/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit one or more resumes onto a single page",
	Long: `Searches for the largest font sizes at which each resume fills the page without overflowing,
and writes a FitResult JSON per document.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runFit,
}

var (
	fitInputs     []string
	fitOutput     string
	fitOutDir     string
	fitPage       string
	fitFill       float64
	fitVerbose    bool
	fitConfigPath string
	fitParallel   int
)

func init() {
	fitCmd.Flags().StringVar(&fitConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	fitCmd.Flags().StringArrayVarP(&fitInputs, "in", "i", nil, "Path to resume JSON file (repeatable, required)")
	fitCmd.Flags().StringVarP(&fitOutput, "out", "o", "", "Path to output FitResult JSON file (single input only, defaults to stdout)")
	fitCmd.Flags().StringVar(&fitOutDir, "out-dir", "", "Directory to write <name>.fit.json per input")
	fitCmd.Flags().StringVar(&fitPage, "page", "", "Page size: a4 or letter")
	fitCmd.Flags().Float64Var(&fitFill, "fill", 0, "Fraction of the usable height to fill (0 < f <= 1)")
	fitCmd.Flags().BoolVarP(&fitVerbose, "verbose", "v", false, "Print the search trace and result to stderr")
	fitCmd.Flags().IntVar(&fitParallel, "parallel", 4, "Maximum documents fitted concurrently")

	if err := fitCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(fitCmd)
}

// fitJob is everything fitDocuments needs, resolved from config and flags
type fitJob struct {
	Inputs   []string
	Output   string
	OutDir   string
	Config   config.Config
	Parallel int
}

func runFit(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, fitConfigPath, fitVerbose)
	if err != nil {
		return err
	}

	// Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("page") {
		cfg.Page = fitPage
	}
	if cmd.Flags().Changed("fill") {
		cfg.FillFraction = fitFill
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = fitVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return fitDocuments(cmd.Context(), fitJob{
		Inputs:   fitInputs,
		Output:   fitOutput,
		OutDir:   fitOutDir,
		Config:   cfg,
		Parallel: fitParallel,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// fitDocuments fits every input concurrently and writes the results in input order
func fitDocuments(ctx context.Context, job fitJob, stdout, stderr io.Writer) error {
	if len(job.Inputs) == 0 {
		return fmt.Errorf("at least one --in document is required")
	}
	if job.Output != "" && len(job.Inputs) > 1 {
		return fmt.Errorf("--out accepts a single input; use --out-dir for %d inputs", len(job.Inputs))
	}
	if job.Output != "" && job.OutDir != "" {
		return fmt.Errorf("--out and --out-dir are mutually exclusive")
	}
	if job.OutDir != "" {
		seen := make(map[string]string, len(job.Inputs))
		for _, input := range job.Inputs {
			name := fitOutputName(input)
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("inputs %s and %s would both write %s in --out-dir", prev, input, name)
			}
			seen[name] = input
		}
	}

	opts, err := job.Config.FitterOptions()
	if err != nil {
		return err
	}
	page, err := job.Config.Geometry()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*types.FitResult, len(job.Inputs))
	var stderrMu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	if job.Parallel > 0 {
		g.SetLimit(job.Parallel)
	}

	for i, input := range job.Inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			// Buffer verbose output so concurrent documents do not interleave
			var trace bytes.Buffer
			docOpts := opts
			var printer *observability.Printer
			if job.Config.Verbose {
				printer = observability.NewPrinter(&trace)
				docOpts = append(append([]layout.Option{}, opts...), layout.WithObserver(printer.PrintIteration))
			}

			result, err := fitFile(input, page, docOpts, printer)
			if trace.Len() > 0 {
				stderrMu.Lock()
				_, _ = io.Copy(stderr, &trace)
				stderrMu.Unlock()
			}
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return writeFitResults(job, results, stdout, stderr)
}

// fitFile loads, fits and annotates a single document
func fitFile(path string, page layout.PageGeometry, opts []layout.Option, printer *observability.Printer) (*types.FitResult, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}

	if printer != nil {
		printer.PrintMetrics(path, layout.ComputeMetrics(doc))
	}

	result, err := layout.NewFitter(opts...).Fit(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to fit %s: %w", path, err)
	}

	if err := validation.Annotate(doc, result, layout.NewEstimator(page)); err != nil {
		return nil, fmt.Errorf("failed to check layout of %s: %w", path, err)
	}

	if printer != nil {
		printer.PrintFitResult(result)
	}
	return result, nil
}

func writeFitResults(job fitJob, results []*types.FitResult, stdout, stderr io.Writer) error {
	switch {
	case job.OutDir != "":
		for i, input := range job.Inputs {
			path := filepath.Join(job.OutDir, fitOutputName(input))
			if err := writeJSON(stdout, path, results[i]); err != nil {
				return err
			}
			checkFitResultSchema(results[i], stderr)
			_, _ = fmt.Fprintf(stdout, "%s -> %s (body %.1fpx, %.1f%% full)\n", input, path, results[i].Config.BodyFontSize, results[i].FillPercentage)
		}
		return nil
	case len(results) == 1:
		checkFitResultSchema(results[0], stderr)
		return writeJSON(stdout, job.Output, results[0])
	default:
		for _, result := range results {
			checkFitResultSchema(result, stderr)
		}
		return writeJSON(stdout, "", results)
	}
}

// fitOutputName maps resume.json to resume.fit.json
func fitOutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".fit.json"
}

// checkFitResultSchema validates output against its schema (non-fatal)
func checkFitResultSchema(result *types.FitResult, stderr io.Writer) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := schemas.ValidateEmbedded(schemafiles.FitResult, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(stderr, "Warning: Generated fit result does not validate against schema: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(stderr, "Warning: Could not validate output against schema: %v\n", err)
		}
	}
}
