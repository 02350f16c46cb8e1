package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	bundled "github.com/jonathan/resume-ats/schemas"
)

// loadResume reads a resume JSON file. A document that does not match the
// resume schema is rejected.
func loadResume(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	if err := schemas.Validate(bundled.Resume, data); err != nil {
		return nil, fmt.Errorf("resume %s is invalid: %w", path, err)
	}

	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume %s: %w", path, err)
	}
	return &resume, nil
}

// loadJob reads the job description from a file or fetches it from a URL.
func loadJob(ctx context.Context, path, url string) (string, *ingestion.Metadata, error) {
	var (
		text   string
		source string
		err    error
	)
	switch {
	case path != "" && url != "":
		return "", nil, errors.New("--job and --job-url are mutually exclusive; provide only one")
	case path != "":
		source = path
		text, err = ingestion.LoadJobDescription(path)
	case url != "":
		source = url
		text, err = ingestion.FetchJobDescription(ctx, url, nil)
	default:
		return "", nil, errors.New("either --job or --job-url must be provided")
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load job description: %w", err)
	}

	meta := ingestion.NewMetadata(text, source)
	logger.Debug().
		Str("source", meta.Source).
		Str("hash", meta.Hash).
		Int("words", meta.Words).
		Msg("job description loaded")
	return text, meta, nil
}

// writeReport writes report as indented JSON. A report that fails the
// output schema is still written; the mismatch is only logged.
func writeReport(path string, report *types.ScoreReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := schemas.Validate(bundled.ScoreReport, data); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("score report does not match schema")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
