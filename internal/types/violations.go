// Package types provides type definitions for structured data used throughout the resume-fitter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation is a layout risk detected for a fitted document
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	CharCount        *int     `json:"char_count,omitempty"`
	OverflowPx       *float64 `json:"overflow_px,omitempty"`
}

// Violations represents a collection of layout risks
type Violations struct {
	Violations []Violation `json:"violations"`
}
