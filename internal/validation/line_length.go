// Package validation inspects fitted layouts for risks the height model cannot see.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/types"
)

// textRun is one string the renderer wraps, with its section and wrap width
type textRun struct {
	section string
	text    string
	bullet  bool
}

// ValidateTokenLengths reports words that are longer than a rendered line at cfg.
// The renderer cannot break them, so the height estimate undercounts their lines.
func ValidateTokenLengths(doc *types.Document, cfg types.SizingConfig, est *layout.Estimator) []types.Violation {
	if doc == nil {
		return nil
	}

	lineChars := est.CharsPerLine(cfg.BodyFontSize)
	bulletChars := est.BulletCharsPerLine(cfg.BulletFontSize)

	var violations []types.Violation
	for _, run := range collectRuns(doc) {
		limit := lineChars
		if run.bullet {
			limit = bulletChars
		}
		for _, token := range strings.Fields(run.text) {
			n := utf8.RuneCountInString(token)
			if n <= limit {
				continue
			}
			violations = append(violations, types.Violation{
				Type:             "unbreakable_token",
				Severity:         "warning",
				Details:          fmt.Sprintf("Word of %d characters exceeds the %d characters that fit on a line", n, limit),
				AffectedSections: []string{run.section},
				CharCount:        intPtr(n),
			})
		}
	}

	return violations
}

// collectRuns lists the wrapped text of the document in render order
func collectRuns(doc *types.Document) []textRun {
	var runs []textRun
	if doc.Summary != "" {
		runs = append(runs, textRun{section: "summary", text: doc.Summary})
	}
	for _, exp := range doc.WorkExperience {
		for _, b := range exp.Bullets {
			runs = append(runs, textRun{section: "work_experience", text: b, bullet: true})
		}
	}
	if len(doc.Skills) > 0 {
		runs = append(runs, textRun{section: "skills", text: strings.Join(doc.Skills, " ")})
	}
	for _, section := range doc.Other {
		name := section.Title
		if name == "" {
			name = "other"
		}
		for _, item := range section.Items {
			runs = append(runs, textRun{section: name, text: item, bullet: true})
		}
	}
	return runs
}

// intPtr returns a pointer to an integer
func intPtr(i int) *int {
	return &i
}
