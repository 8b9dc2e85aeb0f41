// Package validation inspects fitted layouts for risks the height model cannot see.
package validation

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/types"
)

// bulletLineRatio mirrors the tighter line height bullets render with
const bulletLineRatio = 0.9

// OverflowAnalysis contains the results of analyzing page overflow
type OverflowAnalysis struct {
	ExcessPx      float64 // predicted height above the usable height
	ExcessLines   int     // bullet lines that need to go at the fitted line height
	ExcessBullets float64 // estimated bullets that need to go
	CanShorten    bool    // can we fix by shortening bullets?
	MustDrop      bool    // must we drop bullets?
}

// AnalyzeOverflow estimates how much content must be removed for a fitted
// document to stop overflowing at the smallest configuration the fitter tried.
func AnalyzeOverflow(doc *types.Document, result *types.FitResult, est *layout.Estimator) *OverflowAnalysis {
	analysis := &OverflowAnalysis{}
	if result == nil || !result.Overflows {
		return analysis
	}

	analysis.ExcessPx = result.PredictedHeight - result.UsableHeight

	lineHeight := result.Config.LineHeight * bulletLineRatio
	if lineHeight <= 0 {
		lineHeight = 1
	}
	analysis.ExcessLines = int(math.Ceil(analysis.ExcessPx / lineHeight))

	avgLines := averageLinesPerBullet(doc, result.Config, est)
	if avgLines <= 0 {
		avgLines = 2.0 // assume two lines per bullet
	}
	analysis.ExcessBullets = float64(analysis.ExcessLines) / avgLines

	analysis.MustDrop = analysis.ExcessBullets >= 1.0
	analysis.CanShorten = analysis.ExcessBullets < 1.0

	return analysis
}

// averageLinesPerBullet is the mean wrapped line count of every bullet in doc at cfg
func averageLinesPerBullet(doc *types.Document, cfg types.SizingConfig, est *layout.Estimator) float64 {
	if doc == nil {
		return 0
	}
	perLine := est.BulletCharsPerLine(cfg.BulletFontSize)

	total, count := 0, 0
	add := func(text string) {
		n := utf8.RuneCountInString(text) + 3
		total += (n + perLine - 1) / perLine
		count++
	}
	for _, exp := range doc.WorkExperience {
		for _, b := range exp.Bullets {
			add(b)
		}
	}
	for _, section := range doc.Other {
		for _, item := range section.Items {
			add(item)
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// BulletsToDropCount returns the number of bullets that should be dropped
// to resolve the overflow. Returns 0 if no drops are needed.
func (a *OverflowAnalysis) BulletsToDropCount() int {
	if !a.MustDrop {
		return 0
	}
	return int(math.Ceil(a.ExcessBullets))
}
