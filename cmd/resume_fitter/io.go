package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-fitter/internal/config"
	"github.com/jonathan/resume-fitter/internal/schemas"
	"github.com/jonathan/resume-fitter/internal/types"
	schemafiles "github.com/jonathan/resume-fitter/schemas"
	"github.com/spf13/cobra"
)

// loadDocument reads a resume JSON file, checks it against the document schema and decodes it
func loadDocument(path string) (*types.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}

	if err := schemas.ValidateDocument(content); err != nil {
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &schemaLoadErr) {
			return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
		}
		return nil, fmt.Errorf("document %s does not match schema: %w", path, err)
	}

	var doc types.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}
	return &doc, nil
}

// loadSizing reads and validates a SizingConfig JSON file
func loadSizing(path string) (types.SizingConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.SizingConfig{}, fmt.Errorf("failed to read sizing file: %w", err)
	}

	if err := schemas.ValidateEmbedded(schemafiles.SizingConfig, content); err != nil {
		return types.SizingConfig{}, fmt.Errorf("sizing %s does not match schema: %w", path, err)
	}

	var sizing types.SizingConfig
	if err := json.Unmarshal(content, &sizing); err != nil {
		return types.SizingConfig{}, fmt.Errorf("failed to unmarshal sizing JSON: %w", err)
	}
	if err := sizing.Validate(); err != nil {
		return types.SizingConfig{}, fmt.Errorf("invalid sizing %s: %w", path, err)
	}
	return sizing, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if path == "" {
		_, err := fmt.Fprintln(w, string(jsonBytes))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// resolveConfig layers defaults, environment and an optional config file.
// Command flags are applied on top by each command.
func resolveConfig(cmd *cobra.Command, configPath string, verbose bool) (config.Config, error) {
	base := config.FromEnv(config.Defaults())
	if configPath == "" {
		return base, nil
	}

	loadedCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loadedCfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if verbose || loadedCfg.Verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Loaded config from: %s\n", configPath)
	}
	return loadedCfg.MergeWithDefaults(base), nil
}
