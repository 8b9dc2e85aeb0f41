// Package types provides type definitions for structured data used throughout the resume-fitter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// PersonalInfo holds the header block of a resume. Every field is optional.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// WorkExperience is a single position with its bullet points
type WorkExperience struct {
	ID        string   `json:"id,omitempty"`
	Company   string   `json:"company,omitempty"`
	Position  string   `json:"position,omitempty"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Current   bool     `json:"current,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

// Education is a single degree entry
type Education struct {
	ID             string `json:"id,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Field          string `json:"field,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// OtherSection is a free-form titled list (certifications, languages, projects...)
type OtherSection struct {
	ID    string   `json:"id,omitempty"`
	Title string   `json:"title,omitempty"`
	Items []string `json:"items,omitempty"`
}

// Document is the structured resume handed to the fitter. It is read-only to the
// layout code: absent fields contribute nothing to the estimated height.
type Document struct {
	PersonalInfo   *PersonalInfo    `json:"personal_info,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	WorkExperience []WorkExperience `json:"work_experience,omitempty" validate:"dive"`
	Education      []Education      `json:"education,omitempty" validate:"dive"`
	Skills         []string         `json:"skills,omitempty"`
	Other          []OtherSection   `json:"other,omitempty" validate:"dive"`
}

// Validate validates the Document using the validator.
func (d *Document) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// HasSummary reports whether the summary section will be rendered
func (d *Document) HasSummary() bool {
	return d != nil && d.Summary != ""
}

// SkillsLine joins the skills with the given separator, the way the renderer lays them out
func (d *Document) SkillsLine(sep string) string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Skills, sep)
}
