// Package rendering typesets a fitted resume as LaTeX, carrying the fitted font sizes and
// page geometry into the document preamble.
package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/types"
)

// pxToPt converts CSS px at 96 DPI to TeX points at 72 per inch
const pxToPt = 0.75

// headerLeadingRatio is the baseline skip for header text relative to its size
const headerLeadingRatio = 1.2

//go:embed templates/resume.tex.tmpl
var defaultTemplate embed.FS

const defaultTemplateName = "templates/resume.tex.tmpl"

// TemplateData represents the data structure passed to the LaTeX template.
// All text fields are already escaped.
type TemplateData struct {
	Name      string
	Contact   []string
	Summary   string
	Companies []CompanySection
	Education []EducationSection
	Skills    string
	Other     []OtherSection
	Sizes     SizeData
	Page      PageData
}

// CompanySection represents a company with one or more roles
type CompanySection struct {
	Company  string
	Location string
	Roles    []RoleSection
}

// RoleSection represents a role within a company
type RoleSection struct {
	Role    string
	Dates   string // e.g., "2020-08 -- Present"
	Bullets []string
}

// EducationSection is one degree entry
type EducationSection struct {
	Institution string
	Degree      string
	Location    string
	Date        string
	GPA         string
}

// OtherSection is a titled free-form list
type OtherSection struct {
	Title string
	Items []string
}

// SizeData holds the sizing in pt
type SizeData struct {
	Header        float64
	HeaderLeading float64
	Body          float64
	Bullet        float64
	Leading       float64
	SectionSkip   float64
	BulletSkip    float64
}

// PageData holds the page geometry in pt
type PageData struct {
	Width        float64
	Height       float64
	Top          float64
	Bottom       float64
	Side         float64
	BulletIndent float64
}

// RenderLaTeX renders doc with the given sizing on page. An empty templatePath uses the
// built-in one-page template.
func RenderLaTeX(doc *types.Document, sizing types.SizingConfig, page layout.PageGeometry, templatePath string) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is nil"}
	}
	if err := sizing.Validate(); err != nil {
		return "", &RenderError{Message: "invalid sizing", Cause: err}
	}

	// Read and parse template
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(doc, sizing, page)

	// Execute template
	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file, or the embedded default
func parseTemplate(templatePath string) (*template.Template, error) {
	var (
		content []byte
		err     error
	)
	if templatePath == "" {
		content, err = defaultTemplate.ReadFile(defaultTemplateName)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	// Parse template with custom functions for LaTeX escaping and units
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"join":   strings.Join,
		"pt":     formatPt,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// buildTemplateData constructs the template data structure from inputs
func buildTemplateData(doc *types.Document, sizing types.SizingConfig, page layout.PageGeometry) *TemplateData {
	data := &TemplateData{
		Summary:   EscapeLaTeX(strings.TrimSpace(doc.Summary)),
		Companies: groupByCompany(doc.WorkExperience),
		Skills:    strings.Join(escapeAll(doc.Skills), ", "),
		Sizes: SizeData{
			Header:        sizing.HeaderFontSize * pxToPt,
			HeaderLeading: sizing.HeaderFontSize * headerLeadingRatio * pxToPt,
			Body:          sizing.BodyFontSize * pxToPt,
			Bullet:        sizing.BulletFontSize * pxToPt,
			Leading:       sizing.LineHeight * pxToPt,
			SectionSkip:   sizing.SectionSpacing * pxToPt,
			BulletSkip:    sizing.BulletSpacing * pxToPt,
		},
		Page: PageData{
			Width:        page.Width * pxToPt,
			Height:       page.Height * pxToPt,
			Top:          page.MarginTop * pxToPt,
			Bottom:       page.MarginBottom * pxToPt,
			Side:         page.MarginHorizontal * pxToPt,
			BulletIndent: page.BulletIndent * pxToPt,
		},
	}

	if info := doc.PersonalInfo; info != nil {
		data.Name = EscapeLaTeX(strings.TrimSpace(info.Name))
		data.Contact = escapeAll([]string{info.Email, info.Phone, info.Location, info.LinkedIn, info.Website})
	}

	for _, edu := range doc.Education {
		degree := edu.Degree
		if edu.Field != "" {
			if degree != "" {
				degree += " in "
			}
			degree += edu.Field
		}
		data.Education = append(data.Education, EducationSection{
			Institution: EscapeLaTeX(edu.Institution),
			Degree:      EscapeLaTeX(degree),
			Location:    EscapeLaTeX(edu.Location),
			Date:        EscapeLaTeX(edu.GraduationDate),
			GPA:         EscapeLaTeX(edu.GPA),
		})
	}

	for _, section := range doc.Other {
		data.Other = append(data.Other, OtherSection{
			Title: EscapeLaTeX(section.Title),
			Items: escapeAll(section.Items),
		})
	}

	return data
}

// groupByCompany keeps document order but folds consecutive positions at the same
// company under one company heading. Folding only removes lines, so a fitted layout
// still fits.
func groupByCompany(entries []types.WorkExperience) []CompanySection {
	companies := []CompanySection{}
	for _, entry := range entries {
		role := RoleSection{
			Role:    EscapeLaTeX(entry.Position),
			Dates:   formatDates(entry.StartDate, entry.EndDate, entry.Current),
			Bullets: escapeAll(entry.Bullets),
		}

		company := EscapeLaTeX(entry.Company)
		if n := len(companies); n > 0 && company != "" && companies[n-1].Company == company {
			companies[n-1].Roles = append(companies[n-1].Roles, role)
			continue
		}
		companies = append(companies, CompanySection{
			Company:  company,
			Location: EscapeLaTeX(entry.Location),
			Roles:    []RoleSection{role},
		})
	}
	return companies
}

// formatDates renders a date range; a current position or an end of "present" reads "Present"
func formatDates(start, end string, current bool) string {
	if current || strings.EqualFold(end, "present") {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return EscapeLaTeX(end)
	case end == "":
		return EscapeLaTeX(start)
	default:
		return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
	}
}

func formatPt(v float64) string {
	return fmt.Sprintf("%.2fpt", v)
}
