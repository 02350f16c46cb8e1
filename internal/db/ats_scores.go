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

const atsScoreColumns = `id, resume_id, user_id, score, breakdown, suggestions,
	matched_keywords, missing_keywords, analyzed_at, created_at, updated_at`

// GetATSScoreByResumeID retrieves the score for a resume. Returns nil, nil when none exists.
func (db *DB) GetATSScoreByResumeID(ctx context.Context, resumeID uuid.UUID) (*types.ATSScore, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+atsScoreColumns+` FROM ats_scores WHERE resume_id = $1`,
		resumeID,
	)
	score, err := scanATSScore(row, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ats score: %w", err)
	}
	return score, nil
}

// UpsertATSScore stores the score for a resume, replacing any previous one, and
// links it back from the resume row. The resume row is locked for the duration
// so concurrent analyses of one resume serialize. Returns ErrResumeNotFound when
// the resume does not exist.
func (db *DB) UpsertATSScore(ctx context.Context, input *ATSScoreUpsertInput) (*types.ATSScore, error) {
	breakdown, err := encodeBreakdown(input.Breakdown)
	if err != nil {
		return nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	var locked uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM resumes WHERE id = $1 FOR UPDATE`,
		input.ResumeID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to lock resume: %w", err)
	}

	var inserted bool
	row := tx.QueryRow(ctx,
		`INSERT INTO ats_scores (resume_id, user_id, score, breakdown, suggestions,
		                         matched_keywords, missing_keywords, analyzed_at)
		 VALUES ($1, $2, $3, COALESCE($4::jsonb, $8::jsonb), $5, $6, $7, NOW())
		 ON CONFLICT (resume_id) DO UPDATE SET
		     user_id = EXCLUDED.user_id,
		     score = EXCLUDED.score,
		     breakdown = COALESCE($4::jsonb, ats_scores.breakdown),
		     suggestions = EXCLUDED.suggestions,
		     matched_keywords = EXCLUDED.matched_keywords,
		     missing_keywords = EXCLUDED.missing_keywords,
		     analyzed_at = NOW(),
		     updated_at = NOW()
		 RETURNING `+atsScoreColumns+`, (xmax = 0)`,
		input.ResumeID, input.UserID, input.Score, breakdown,
		nonNil(input.Suggestions), nonNil(input.MatchedKeywords), nonNil(input.MissingKeywords),
		zeroBreakdownJSON,
	)
	score, err := scanATSScore(row, &inserted)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert ats score: %w", err)
	}
	score.Created = inserted

	_, err = tx.Exec(ctx,
		`UPDATE resumes SET ats_score_id = $1, updated_at = NOW()
		 WHERE id = $2 AND ats_score_id IS DISTINCT FROM $1`,
		score.ID, input.ResumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to link ats score to resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return score, nil
}

// scanATSScore reads atsScoreColumns, plus the inserted flag when it is non-nil.
func scanATSScore(row pgx.Row, inserted *bool) (*types.ATSScore, error) {
	var (
		score     types.ATSScore
		breakdown []byte
	)
	dest := []any{
		&score.ID, &score.ResumeID, &score.UserID, &score.Score, &breakdown,
		&score.Suggestions, &score.MatchedKeywords, &score.MissingKeywords,
		&score.AnalyzedAt, &score.CreatedAt, &score.UpdatedAt,
	}
	if inserted != nil {
		dest = append(dest, inserted)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	decoded, err := decodeBreakdown(breakdown)
	if err != nil {
		return nil, err
	}
	score.Breakdown = decoded
	return &score, nil
}

var zeroBreakdownJSON = mustJSON(types.ScoreBreakdown{})

func encodeBreakdown(b *types.ScoreBreakdown) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	return data, nil
}

func decodeBreakdown(data []byte) (*types.ScoreBreakdown, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var b types.ScoreBreakdown
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode breakdown: %w", err)
	}
	return &b, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
