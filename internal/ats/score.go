package ats

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	maxScore = 100
	// maxReportedKeywords caps matched/missing lists in the report
	maxReportedKeywords = 10
	// maxSuggestedKeywords is how many missing keywords the improvement message names
	maxSuggestedKeywords = 5
)

// Strength thresholds (strictly greater than)
const (
	keywordStrengthThreshold = 30
	sectionStrengthThreshold = 20
	formatStrengthThreshold  = 15
)

// Strength messages
const (
	StrengthKeywordMatch = "Good keyword match with job description"
	StrengthSections     = "Well-structured resume sections"
	StrengthFormat       = "Professional format and template"
)

// CalculateScore scores a resume against a job description. It never fails:
// missing sections count as empty and an empty job description scores zero on keywords.
func CalculateScore(resume *types.Resume, jobDescription string) *types.ScoreReport {
	return scoreWithKeywords(resume, ExtractKeywords(jobDescription))
}

// scoreWithKeywords runs the matcher and the three evaluators and combines them.
func scoreWithKeywords(resume *types.Resume, keywords []string) *types.ScoreReport {
	keywordResult := MatchKeywords(resume, keywords)
	sectionResult := EvaluateSections(resume)
	formatResult := EvaluateFormat(resume)
	contactResult := EvaluateContact(resume)

	total := keywordResult.Score + sectionResult.Score + formatResult.Score + contactResult.Score

	improvements := make([]string, 0, len(sectionResult.Feedback)+len(formatResult.Feedback)+len(contactResult.Feedback)+1)
	improvements = append(improvements, sectionResult.Feedback...)
	improvements = append(improvements, formatResult.Feedback...)
	improvements = append(improvements, contactResult.Feedback...)
	if len(keywordResult.Missing) > 0 {
		improvements = append(improvements, fmt.Sprintf("Add these keywords: %s",
			strings.Join(head(keywordResult.Missing, maxSuggestedKeywords), ", ")))
	}

	strengths := make([]string, 0, 3)
	if keywordResult.Score > keywordStrengthThreshold {
		strengths = append(strengths, StrengthKeywordMatch)
	}
	if sectionResult.Score > sectionStrengthThreshold {
		strengths = append(strengths, StrengthSections)
	}
	if formatResult.Score > formatStrengthThreshold {
		strengths = append(strengths, StrengthFormat)
	}

	return &types.ScoreReport{
		Score: min(total, maxScore),
		Breakdown: types.ScoreBreakdown{
			KeywordScore: keywordResult.Score,
			SectionScore: sectionResult.Score,
			FormatScore:  formatResult.Score,
			ContactScore: contactResult.Score,
		},
		MatchedKeywords: head(keywordResult.Matched, maxReportedKeywords),
		MissingKeywords: head(keywordResult.Missing, maxReportedKeywords),
		Strengths:       strengths,
		Improvements:    improvements,
	}
}

// head returns a copy of at most n leading items.
func head(items []string, n int) []string {
	out := make([]string, 0, min(len(items), n))
	return append(out, items[:min(len(items), n)]...)
}
