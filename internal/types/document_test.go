// Package types provides type definitions for structured data used throughout the resume-fitter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_JSONFieldNames(t *testing.T) {
	input := `{
		"personal_info": {"name": "Ada", "linkedin": "in/ada"},
		"summary": "Mathematician",
		"work_experience": [{"company": "AE", "startDate": "1842", "endDate": "1843", "current": false, "bullets": ["Notes"]}],
		"education": [{"institution": "Home", "graduationDate": "1833", "gpa": "4.0"}],
		"skills": ["Analysis"],
		"other": [{"title": "Languages", "items": ["French"]}]
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	require.NotNil(t, doc.PersonalInfo)
	assert.Equal(t, "in/ada", doc.PersonalInfo.LinkedIn)
	assert.Equal(t, "1842", doc.WorkExperience[0].StartDate)
	assert.Equal(t, []string{"Notes"}, doc.WorkExperience[0].Bullets)
	assert.Equal(t, "1833", doc.Education[0].GraduationDate)
	assert.Equal(t, "4.0", doc.Education[0].GPA)
	assert.Equal(t, "Languages", doc.Other[0].Title)
	assert.NoError(t, doc.Validate())
}

func TestDocument_HasSummary(t *testing.T) {
	var nilDoc *Document
	assert.False(t, nilDoc.HasSummary())
	assert.False(t, (&Document{}).HasSummary())
	assert.True(t, (&Document{Summary: "x"}).HasSummary())
}

func TestDocument_SkillsLine(t *testing.T) {
	var nilDoc *Document
	assert.Equal(t, "", nilDoc.SkillsLine(", "))
	assert.Equal(t, "Go • SQL", (&Document{Skills: []string{"Go", "SQL"}}).SkillsLine(" • "))
}
