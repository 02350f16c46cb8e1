// Package types provides type definitions for structured data used throughout the resume-ats system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// MaxJobDescriptionLength bounds the job description accepted over the API.
const MaxJobDescriptionLength = 50000

// AnalyzeRequest asks for a resume to be scored against a job description.
// Either JobDescription or JobURL may be given; an empty description scores
// keywords as zero.
type AnalyzeRequest struct {
	ResumeID       string `json:"resumeId" validate:"required,uuid"`
	JobDescription string `json:"jobDescription" validate:"max=50000"`
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// SaveScoreRequest stores a score computed elsewhere.
type SaveScoreRequest struct {
	ResumeID        string   `json:"resumeId" validate:"required,uuid"`
	Score           *int     `json:"score" validate:"required,min=0,max=100"`
	Suggestions     []string `json:"suggestions,omitempty"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
	MissingKeywords []string `json:"missingKeywords,omitempty"`
}

// ATSScore is the persisted score record for a resume, as returned by the API.
type ATSScore struct {
	ID              uuid.UUID       `json:"id"`
	ResumeID        uuid.UUID       `json:"resumeId"`
	UserID          uuid.UUID       `json:"userId"`
	Score           int             `json:"score"`
	Breakdown       *ScoreBreakdown `json:"breakdown,omitempty"`
	Suggestions     []string        `json:"suggestions"`
	MatchedKeywords []string        `json:"matchedKeywords"`
	MissingKeywords []string        `json:"missingKeywords"`
	AnalyzedAt      time.Time       `json:"analyzedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	// Created is true when the last upsert inserted the record rather than updating it.
	Created bool `json:"-"`
}

// AnalyzeResponse is returned by the analyze endpoint.
type AnalyzeResponse struct {
	Success  bool         `json:"success"`
	Analysis *ScoreReport `json:"analysis,omitempty"`
	ATSScore *ATSScore    `json:"atsScore"`
}
