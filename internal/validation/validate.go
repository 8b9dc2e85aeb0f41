// Package validation inspects fitted layouts for risks the height model cannot see.
package validation

import (
	"fmt"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/types"
)

// underfillThreshold is the fill percentage below which a max-size layout is reported
const underfillThreshold = 60.0

// CheckFit reports layout risks for a document fitted by the layout package:
// predicted overflow, words wider than a line, a bullet font below the readable
// minimum, and pages left mostly empty at the largest font size.
func CheckFit(doc *types.Document, result *types.FitResult, est *layout.Estimator) (*types.Violations, error) {
	if result == nil {
		return nil, &Error{Message: "fit result is nil"}
	}
	if est == nil {
		return nil, &Error{Message: "estimator is nil"}
	}

	violations := []types.Violation{}

	if result.Overflows {
		analysis := AnalyzeOverflow(doc, result, est)
		excess := analysis.ExcessPx
		details := fmt.Sprintf("Content is predicted to overflow the page by %.0fpx at the minimum font size", excess)
		if n := analysis.BulletsToDropCount(); n > 0 {
			details += fmt.Sprintf("; drop about %d bullet(s)", n)
		} else if analysis.CanShorten {
			details += "; shortening bullets should be enough"
		}
		violations = append(violations, types.Violation{
			Type:       "page_overflow",
			Severity:   "error",
			Details:    details,
			OverflowPx: &excess,
		})
	}

	violations = append(violations, ValidateTokenLengths(doc, result.Config, est)...)

	if result.Config.BulletFontSize < layout.MinFontSize {
		violations = append(violations, types.Violation{
			Type:             "bullet_font_below_minimum",
			Severity:         "warning",
			Details:          fmt.Sprintf("Bullet font size %.1f is below the readable minimum of %d", result.Config.BulletFontSize, layout.MinFontSize),
			AffectedSections: []string{"work_experience", "other"},
		})
	}

	if !result.Overflows && result.Config.BodyFontSize >= layout.MaxBodyFontSize && result.FillPercentage < underfillThreshold {
		violations = append(violations, types.Violation{
			Type:     "underfilled",
			Severity: "info",
			Details:  fmt.Sprintf("Page is only %.1f%% full at the largest body font size", result.FillPercentage),
		})
	}

	return &types.Violations{Violations: violations}, nil
}

// Annotate runs CheckFit and stores the violations on result.Warnings
func Annotate(doc *types.Document, result *types.FitResult, est *layout.Estimator) error {
	violations, err := CheckFit(doc, result, est)
	if err != nil {
		return err
	}
	if len(violations.Violations) > 0 {
		result.Warnings = violations.Violations
	}
	return nil
}
