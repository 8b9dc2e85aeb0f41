// Package types provides type definitions for structured data used throughout the resume-fitter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SizingConfig is the typographic configuration handed to the renderer.
// Font sizes and line height are in px; spacing values are vertical gaps in px.
// The font bounds match layout.MinFontSize, layout.MaxBodyFontSize and layout.MaxHeaderSize.
type SizingConfig struct {
	HeaderFontSize float64 `json:"headerFontSize" validate:"gt=0,lte=22,gtefield=BodyFontSize"`
	BodyFontSize   float64 `json:"bodyFontSize" validate:"gte=8,lte=16"`
	BulletFontSize float64 `json:"bulletFontSize" validate:"gt=0"`
	LineHeight     float64 `json:"lineHeight" validate:"gt=0"`
	SectionSpacing float64 `json:"sectionSpacing" validate:"gte=0"`
	BulletSpacing  float64 `json:"bulletSpacing" validate:"gte=0"`
}

// Validate checks the struct tags and the bullet/body relationship.
func (c *SizingConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if diff := c.BodyFontSize - c.BulletFontSize; diff < 0.45 || diff > 0.55 {
		return fmt.Errorf("bulletFontSize must be bodyFontSize - 0.5, got body=%.2f bullet=%.2f", c.BodyFontSize, c.BulletFontSize)
	}
	return nil
}

// ContentMetrics are cheap volume measures of a document used to seed a font size
type ContentMetrics struct {
	TotalCharacters     int `json:"totalCharacters"`
	BulletCount         int `json:"bulletCount"`
	SectionCount        int `json:"sectionCount"`
	WorkExperienceCount int `json:"workExperienceCount"`
	EducationCount      int `json:"educationCount"`
}
