// Package types provides type definitions for structured data used throughout the resume-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ScoreReport is the outcome of scoring a resume against a job description
type ScoreReport struct {
	Score           int            `json:"score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	MatchedKeywords []string       `json:"matchedKeywords"`
	MissingKeywords []string       `json:"missingKeywords"`
	Strengths       []string       `json:"strengths"`
	Improvements    []string       `json:"improvements"`
}

// ScoreBreakdown holds the four weighted sub-scores that sum to Score
type ScoreBreakdown struct {
	KeywordScore int `json:"keywordScore"`
	SectionScore int `json:"sectionScore"`
	FormatScore  int `json:"formatScore"`
	ContactScore int `json:"contactScore"`
}
