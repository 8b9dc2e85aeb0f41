// Package types provides type definitions for structured data used throughout the resume-fitter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Fit phases reported to observers
const (
	PhaseInitial   = "initial"
	PhaseSearch    = "search"
	PhaseEmergency = "emergency"
)

// FitIteration is one estimator call made while fitting a document
type FitIteration struct {
	Phase           string       `json:"phase"`
	Index           int          `json:"index"`
	Config          SizingConfig `json:"config"`
	PredictedHeight float64      `json:"predicted_height"`
}

// FitResult is the outcome of fitting a document to a page
type FitResult struct {
	Config              SizingConfig `json:"config"`
	PredictedHeight     float64      `json:"predicted_height"`
	TargetHeight        float64      `json:"target_height"`
	UsableHeight        float64      `json:"usable_height"`
	FillPercentage      float64      `json:"fill_percentage"`
	Iterations          int          `json:"iterations"`
	EmergencyIterations int          `json:"emergency_iterations"`
	Overflows           bool         `json:"overflows"`
	Warnings            []Violation  `json:"warnings,omitempty"`
}
