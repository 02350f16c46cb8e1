package db

import (
	"github.com/google/uuid"
	"github.com/jonathan/resume-ats/internal/types"
)

// ResumeCreateInput holds the fields for a new resume row.
type ResumeCreateInput struct {
	UserID     uuid.UUID
	Title      string
	TemplateID string
	Sections   types.SectionData
}

// ATSScoreUpsertInput holds the fields written by UpsertATSScore.
// A nil Breakdown keeps the stored breakdown on update and stores zeros on insert.
type ATSScoreUpsertInput struct {
	ResumeID        uuid.UUID
	UserID          uuid.UUID
	Score           int
	Breakdown       *types.ScoreBreakdown
	Suggestions     []string
	MatchedKeywords []string
	MissingKeywords []string
}
