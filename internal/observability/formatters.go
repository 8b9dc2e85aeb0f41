// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-fitter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMetrics outputs the content volume measures of a document.
func (p *Printer) PrintMetrics(name string, m types.ContentMetrics) {
	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("Document:    %s\n\n", name))
	}
	sb.WriteString(fmt.Sprintf("Characters:  %d\n", m.TotalCharacters))
	sb.WriteString(fmt.Sprintf("Bullets:     %d\n", m.BulletCount))
	sb.WriteString(fmt.Sprintf("Sections:    %d\n", m.SectionCount))
	sb.WriteString(fmt.Sprintf("Positions:   %d\n", m.WorkExperienceCount))
	sb.WriteString(fmt.Sprintf("Education:   %d", m.EducationCount))

	p.printBox("CONTENT METRICS", sb.String())
}

// PrintIteration outputs a single line for one evaluated candidate.
// Its signature matches layout.Observer.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIteration(it types.FitIteration) {
	fmt.Fprintf(p.out, "  [%-9s #%02d] body=%5.2fpx header=%5.2fpx line=%5.2fpx -> %7.1fpx\n",
		it.Phase, it.Index, it.Config.BodyFontSize, it.Config.HeaderFontSize,
		it.Config.LineHeight, it.PredictedHeight)
}

// PrintSizingConfig outputs a sizing configuration.
func (p *Printer) PrintSizingConfig(title string, cfg types.SizingConfig) {
	if title == "" {
		title = "SIZING CONFIG"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Header font:     %.1fpx\n", cfg.HeaderFontSize))
	sb.WriteString(fmt.Sprintf("Body font:       %.1fpx\n", cfg.BodyFontSize))
	sb.WriteString(fmt.Sprintf("Bullet font:     %.1fpx\n", cfg.BulletFontSize))
	sb.WriteString(fmt.Sprintf("Line height:     %.1fpx\n", cfg.LineHeight))
	sb.WriteString(fmt.Sprintf("Section spacing: %.0fpx\n", cfg.SectionSpacing))
	sb.WriteString(fmt.Sprintf("Bullet spacing:  %.0fpx", cfg.BulletSpacing))

	p.printBox(title, sb.String())
}

// PrintFitResult outputs the outcome of a fit, including any warnings it carries.
func (p *Printer) PrintFitResult(result *types.FitResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	status := "✓ fits"
	if result.Overflows {
		status = "✗ overflows"
	}
	sb.WriteString(fmt.Sprintf("Status:      %s\n", status))
	sb.WriteString(fmt.Sprintf("Body font:   %.1fpx (header %.1fpx)\n", result.Config.BodyFontSize, result.Config.HeaderFontSize))
	sb.WriteString(fmt.Sprintf("Height:      %.1f / %.0fpx (target %.0fpx)\n", result.PredictedHeight, result.UsableHeight, result.TargetHeight))
	sb.WriteString(fmt.Sprintf("Fill:        %.1f%%\n", result.FillPercentage))
	sb.WriteString(fmt.Sprintf("Iterations:  %d search, %d emergency", result.Iterations, result.EmergencyIterations))

	if len(result.Warnings) > 0 {
		sb.WriteString("\n\nWarnings:\n")
		count := min(len(result.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", result.Warnings[i].Type))
		}
		if len(result.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("FIT RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any layout risks found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO LAYOUT RISKS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d layout risks:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		details := v.Details
		if len(details) > 45 {
			details = details[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s [%s]\n", v.Type, v.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", details))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LAYOUT RISKS", sb.String())
}
