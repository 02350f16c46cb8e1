package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-ats/internal/fetch"
)

// ErrEmptyJobDescription is returned when a source yields no text.
var ErrEmptyJobDescription = errors.New("job description is empty")

// LoadJobDescription reads a job description file and cleans it.
// Files with an .html/.htm extension, or content that looks like HTML, are
// converted to text first.
func LoadJobDescription(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("job description file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read job description: %w", err)
	}

	text, err := Normalize(string(content), isHTMLPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", path, err)
	}
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyJobDescription)
	}
	return text, nil
}

// FetchJobDescription downloads a job posting and cleans its main text.
func FetchJobDescription(ctx context.Context, url string, opts *fetch.Options) (string, error) {
	raw, err := fetch.JobPosting(ctx, url, opts)
	if err != nil {
		return "", err
	}
	text := CleanText(raw)
	if text == "" {
		return "", fmt.Errorf("%s: %w", url, ErrEmptyJobDescription)
	}
	return text, nil
}

// Normalize turns raw job description input into clean text. When forceHTML is
// false, HTML is detected from the content.
func Normalize(raw string, forceHTML bool) (string, error) {
	if forceHTML || LooksLikeHTML(raw) {
		text, err := HTMLToText(raw)
		if err != nil {
			return "", err
		}
		raw = text
	}
	return CleanText(raw), nil
}

func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
