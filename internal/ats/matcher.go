package ats

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

// keywordWeight is the share of the total score given to keyword matching
const keywordWeight = 0.4

// KeywordResult is the outcome of matching job keywords against a resume.
type KeywordResult struct {
	Score   int
	Matched []string
	Missing []string
}

// MatchKeywords checks each keyword for substring containment in the resume's
// serialized section data. Matched and missing keep the keyword order.
func MatchKeywords(resume *types.Resume, keywords []string) KeywordResult {
	result := KeywordResult{
		Matched: make([]string, 0),
		Missing: make([]string, 0),
	}

	text := resumeText(resume)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			result.Matched = append(result.Matched, keyword)
		} else {
			result.Missing = append(result.Missing, keyword)
		}
	}

	matchRate := 0.0
	if len(keywords) > 0 {
		matchRate = float64(len(result.Matched)) / float64(len(keywords)) * 100
	}
	result.Score = roundHalfUp(matchRate * keywordWeight)

	return result
}

// resumeText serializes all six sections as JSON and lowercases the result.
// Field names are part of the text, so a keyword such as "experience" always matches.
func resumeText(resume *types.Resume) string {
	var sections types.SectionData
	if resume != nil {
		sections = resume.Sections
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sections); err != nil {
		// SectionEntry values are either valid JSON or null; encoding cannot fail
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(buf.String(), "\n"))
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
