package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-ats/internal/types"
)

// GetResume retrieves a resume by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	var (
		resume   types.Resume
		sections []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, template_id, section_data
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&resume.ID, &resume.UserID, &resume.Title, &resume.TemplateID, &sections)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(sections, &resume.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode section data for resume %s: %w", id, err)
	}
	return &resume, nil
}

// CreateResume inserts a resume and returns it with its generated ID.
func (db *DB) CreateResume(ctx context.Context, input *ResumeCreateInput) (*types.Resume, error) {
	sections, err := json.Marshal(input.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section data: %w", err)
	}

	resume := &types.Resume{
		UserID:     input.UserID,
		Title:      input.Title,
		TemplateID: input.TemplateID,
		Sections:   input.Sections.Normalized(),
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template_id, section_data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		input.UserID, input.Title, input.TemplateID, sections,
	).Scan(&resume.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

// GetResumeScoreID returns the score ID linked from a resume, or nil when unlinked.
func (db *DB) GetResumeScoreID(ctx context.Context, resumeID uuid.UUID) (*uuid.UUID, error) {
	var scoreID *uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT ats_score_id FROM resumes WHERE id = $1`,
		resumeID,
	).Scan(&scoreID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to get resume score link: %w", err)
	}
	return scoreID, nil
}
