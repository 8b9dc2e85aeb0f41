package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationTypes(v *types.Violations) []string {
	out := make([]string, 0, len(v.Violations))
	for _, violation := range v.Violations {
		out = append(out, violation.Type)
	}
	return out
}

func fit(t *testing.T, doc *types.Document) (*types.FitResult, *layout.Estimator) {
	t.Helper()
	fitter := layout.NewFitter()
	result, err := fitter.Fit(doc)
	require.NoError(t, err)
	return result, layout.NewEstimator(fitter.Page())
}

func TestCheckFit_CleanDocument(t *testing.T) {
	doc := &types.Document{
		Summary: strings.Repeat("Delivered reliable systems for payments teams. ", 12),
		WorkExperience: []types.WorkExperience{
			{Position: "Engineer", Bullets: []string{strings.Repeat("Reduced latency across services ", 3)}},
		},
	}
	for i := 0; i < 5; i++ {
		doc.WorkExperience = append(doc.WorkExperience, types.WorkExperience{
			Position: "Engineer",
			Bullets:  []string{strings.Repeat("Built and operated the billing platform ", 4)},
		})
	}

	result, est := fit(t, doc)
	violations, err := CheckFit(doc, result, est)
	require.NoError(t, err)
	assert.Empty(t, violations.Violations)
}

func TestCheckFit_Overflow(t *testing.T) {
	bullets := make([]string, 10)
	for i := range bullets {
		bullets[i] = strings.Repeat("Migrated legacy workloads to containers ", 8)
	}
	doc := &types.Document{}
	for i := 0; i < 20; i++ {
		doc.WorkExperience = append(doc.WorkExperience, types.WorkExperience{Position: "Engineer", Bullets: bullets})
	}

	result, est := fit(t, doc)
	require.True(t, result.Overflows)

	violations, err := CheckFit(doc, result, est)
	require.NoError(t, err)
	require.Contains(t, violationTypes(violations), "page_overflow")

	overflow := violations.Violations[0]
	assert.Equal(t, "error", overflow.Severity)
	require.NotNil(t, overflow.OverflowPx)
	assert.Greater(t, *overflow.OverflowPx, 0.0)
	assert.Contains(t, overflow.Details, "drop about")
}

func TestCheckFit_UnbreakableTokenAndUnderfill(t *testing.T) {
	doc := &types.Document{Summary: "see " + strings.Repeat("x", 120)}

	result, est := fit(t, doc)
	violations, err := CheckFit(doc, result, est)
	require.NoError(t, err)

	got := violationTypes(violations)
	assert.Contains(t, got, "unbreakable_token")
	assert.Contains(t, got, "underfilled")
}

func TestCheckFit_BulletFontBelowMinimum(t *testing.T) {
	result := &types.FitResult{
		Config:         types.SizingConfig{HeaderFontSize: 10, BodyFontSize: 8, BulletFontSize: 7.5, LineHeight: 8.8},
		UsableHeight:   1083,
		FillPercentage: 90,
	}
	violations, err := CheckFit(&types.Document{}, result, layout.NewEstimator(layout.A4))
	require.NoError(t, err)
	assert.Equal(t, []string{"bullet_font_below_minimum"}, violationTypes(violations))
}

func TestCheckFit_NilInputs(t *testing.T) {
	_, err := CheckFit(&types.Document{}, nil, layout.NewEstimator(layout.A4))
	var validationErr *Error
	assert.True(t, errors.As(err, &validationErr))

	_, err = CheckFit(&types.Document{}, &types.FitResult{}, nil)
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	doc := &types.Document{Summary: strings.Repeat("y", 200)}
	result, est := fit(t, doc)

	require.NoError(t, Annotate(doc, result, est))
	assert.NotEmpty(t, result.Warnings)
}
