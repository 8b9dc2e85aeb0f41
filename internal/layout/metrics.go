package layout

import (
	"unicode/utf8"

	"github.com/jonathan/resume-fitter/internal/types"
)

// Padding added to each counted field to stand in for the labels, separators and
// glyphs the renderer puts around it. Empirically tuned; recalibrate against a real
// text-measurement backend if the rendering font changes.
const (
	headerPadding         = 50
	positionPadding       = 20
	companyPadding        = 10
	workDatePadding       = 20
	bulletPadding         = 5
	degreePadding         = 15
	institutionPadding    = 10
	educationDatePadding  = 15
	gpaPadding            = 5
	skillsPadding         = 20
	otherTitlePadding     = 15
	metricsSkillSeparator = ", "
)

// ComputeMetrics walks the document and returns its volume measures.
// A nil document yields zero metrics.
func ComputeMetrics(doc *types.Document) types.ContentMetrics {
	var m types.ContentMetrics
	if doc == nil {
		return m
	}

	if p := doc.PersonalInfo; p != nil {
		m.TotalCharacters += textLen(p.Name) + headerPadding
		m.TotalCharacters += textLen(p.Email)
		m.TotalCharacters += textLen(p.Phone)
		m.TotalCharacters += textLen(p.Location)
		m.TotalCharacters += textLen(p.LinkedIn)
	}

	if doc.HasSummary() {
		m.TotalCharacters += textLen(doc.Summary)
		m.SectionCount++
	}

	if len(doc.WorkExperience) > 0 {
		m.SectionCount++
		m.WorkExperienceCount = len(doc.WorkExperience)
		for _, exp := range doc.WorkExperience {
			m.TotalCharacters += textLen(exp.Position) + positionPadding
			m.TotalCharacters += textLen(exp.Company) + companyPadding
			m.TotalCharacters += textLen(exp.Location)
			m.TotalCharacters += workDatePadding

			m.BulletCount += len(exp.Bullets)
			for _, bullet := range exp.Bullets {
				m.TotalCharacters += textLen(bullet) + bulletPadding
			}
		}
	}

	if len(doc.Education) > 0 {
		m.SectionCount++
		m.EducationCount = len(doc.Education)
		for _, edu := range doc.Education {
			m.TotalCharacters += textLen(edu.Degree) + degreePadding
			m.TotalCharacters += textLen(edu.Institution) + institutionPadding
			m.TotalCharacters += textLen(edu.Field)
			m.TotalCharacters += textLen(edu.Location)
			m.TotalCharacters += educationDatePadding
			if edu.GPA != "" {
				m.TotalCharacters += textLen(edu.GPA) + gpaPadding
			}
		}
	}

	if len(doc.Skills) > 0 {
		m.SectionCount++
		m.TotalCharacters += textLen(doc.SkillsLine(metricsSkillSeparator)) + skillsPadding
	}

	for _, section := range doc.Other {
		m.SectionCount++
		m.TotalCharacters += textLen(section.Title) + otherTitlePadding
		m.BulletCount += len(section.Items)
		for _, item := range section.Items {
			m.TotalCharacters += textLen(item) + bulletPadding
		}
	}

	return m
}

// textLen counts code points, not bytes
func textLen(s string) int {
	return utf8.RuneCountInString(s)
}
