package schemas

import (
	"os"
	"path/filepath"
	"testing"

	schemafiles "github.com/jonathan/resume-fitter/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nameSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", nameSchema)

	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{name: "valid", content: `{"name": "test"}`},
		{name: "missing field", content: `{"age": 30}`, wantError: true},
		{name: "wrong type", content: `{"name": 5}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, "doc.json", tt.content)
			err := ValidateJSON(schemaPath, jsonPath)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T", err)
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", nameSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "x"}`)

	err := ValidateJSON(filepath.Join(dir, "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "person")
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument([]byte(`{"summary": "hi", "skills": ["Go"]}`)))

	err := ValidateDocument([]byte(`{"work_experience": [{"bullets": [1, 2]}]}`))
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "got %T: %v", err, err)
	assert.NotEmpty(t, validationErr.Errors)

	err = ValidateDocument([]byte(`{"skills": "Go"}`))
	assert.Error(t, err)
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Path)

	assert.NoError(t, ValidateEmbedded(schemafiles.FitResult, []byte(`{
		"config": {}, "predicted_height": 900, "target_height": 953, "usable_height": 1083,
		"fill_percentage": 83.1, "iterations": 4, "emergency_iterations": 0, "overflows": false
	}`)))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
