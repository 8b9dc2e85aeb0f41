package layout

import (
	"math"

	"github.com/jonathan/resume-fitter/internal/types"
)

// Height model constants, tuned against Times New Roman output.
const (
	// glyphWidthRatio is the average glyph width as a fraction of the font size
	glyphWidthRatio = 0.5
	// bulletMarkerChars accounts for the bullet symbol and its gap
	bulletMarkerChars = 3
	// bulletTightening: bullets render slightly tighter than prose
	bulletTightening = 0.9

	nameLineHeight       = 20
	contactLinePadding   = 2
	headerBorderPadding  = 8
	sectionTitlePadding  = 2
	entryTitlePadding    = 1
	bulletBlockGap       = 2
	workEntryGapRatio    = 0.7
	educationEntryGapRat = 0.5
	gpaLineOffset        = -1
	footerAllowance      = 15

	skillsSeparator = " • "
)

// Estimator predicts rendered heights for a given page
type Estimator struct {
	Page PageGeometry
}

// NewEstimator returns an Estimator for the page
func NewEstimator(page PageGeometry) *Estimator {
	return &Estimator{Page: page}
}

// EstimateHeight predicts the rendered height of doc on an A4 page
func EstimateHeight(doc *types.Document, cfg types.SizingConfig) float64 {
	return NewEstimator(A4).EstimateHeight(doc, cfg)
}

// CharsPerLine is the number of body characters that fit on one line at fontSize
func (e *Estimator) CharsPerLine(fontSize float64) int {
	return charsPerLine(e.Page.UsableWidth(), fontSize)
}

// BulletCharsPerLine is the number of bullet characters that fit on one line at fontSize
func (e *Estimator) BulletCharsPerLine(fontSize float64) int {
	return charsPerLine(e.Page.BulletWidth(), fontSize)
}

// EstimateHeight predicts the vertical space in px that doc occupies when rendered with cfg.
// Each string wraps into ceil(len/charsPerLine) lines.
func (e *Estimator) EstimateHeight(doc *types.Document, cfg types.SizingConfig) float64 {
	body := cfg.BodyFontSize
	lineChars := e.CharsPerLine(body)
	bulletChars := e.BulletCharsPerLine(cfg.BulletFontSize)
	sectionTitle := body + sectionTitlePadding

	height := float64(nameLineHeight)
	height += body + contactLinePadding
	height += headerBorderPadding

	if doc == nil {
		return height + footerAllowance
	}

	bulletHeight := func(text string) float64 {
		lines := wrappedLines(textLen(text)+bulletMarkerChars, bulletChars)
		return float64(lines)*cfg.LineHeight*bulletTightening + cfg.BulletSpacing
	}

	if doc.HasSummary() {
		height += cfg.SectionSpacing + sectionTitle
		height += float64(wrappedLines(textLen(doc.Summary), lineChars)) * cfg.LineHeight
	}

	if len(doc.WorkExperience) > 0 {
		height += cfg.SectionSpacing + sectionTitle
		for i, exp := range doc.WorkExperience {
			if i > 0 {
				height += cfg.SectionSpacing * workEntryGapRatio
			}
			height += body + entryTitlePadding // position
			height += body                     // company and location
			if len(exp.Bullets) > 0 {
				height += bulletBlockGap
				for _, bullet := range exp.Bullets {
					height += bulletHeight(bullet)
				}
			}
		}
	}

	if len(doc.Education) > 0 {
		height += cfg.SectionSpacing + sectionTitle
		for i, edu := range doc.Education {
			if i > 0 {
				height += cfg.SectionSpacing * educationEntryGapRat
			}
			height += body + entryTitlePadding // degree
			height += body                     // institution and location
			if edu.GPA != "" {
				height += body + gpaLineOffset
			}
		}
	}

	if len(doc.Skills) > 0 {
		height += cfg.SectionSpacing + sectionTitle
		lines := wrappedLines(textLen(doc.SkillsLine(skillsSeparator)), lineChars)
		height += float64(lines) * cfg.LineHeight * bulletTightening
	}

	for _, section := range doc.Other {
		height += cfg.SectionSpacing + sectionTitle
		for _, item := range section.Items {
			height += bulletHeight(item)
		}
	}

	return height + footerAllowance
}

func charsPerLine(width, fontSize float64) int {
	if fontSize <= 0 {
		return int(math.Max(1, width))
	}
	n := int(math.Floor(width / (fontSize * glyphWidthRatio)))
	if n < 1 {
		return 1
	}
	return n
}

func wrappedLines(length, perLine int) int {
	if length <= 0 {
		return 0
	}
	return (length + perLine - 1) / perLine
}
