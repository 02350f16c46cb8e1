package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/types"
)

// Store is the persistence the ATS endpoints need. *db.DB implements it.
type Store interface {
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	GetATSScoreByResumeID(ctx context.Context, resumeID uuid.UUID) (*types.ATSScore, error)
	UpsertATSScore(ctx context.Context, input *db.ATSScoreUpsertInput) (*types.ATSScore, error)
}

var _ Store = (*db.DB)(nil)

// JobFetcher retrieves the text of a job posting.
type JobFetcher func(ctx context.Context, url string) (string, error)

// ATSService scores resumes and stores the results.
type ATSService struct {
	store    Store
	fetchJob JobFetcher
}

// NewATSService creates an ATSService. A nil fetcher uses ingestion.FetchJobDescription.
func NewATSService(store Store, fetcher JobFetcher) *ATSService {
	if fetcher == nil {
		fetcher = func(ctx context.Context, url string) (string, error) {
			return ingestion.FetchJobDescription(ctx, url, nil)
		}
	}
	return &ATSService{store: store, fetchJob: fetcher}
}

// Analyze scores the caller's resume against a job description and stores the result.
func (s *ATSService) Analyze(ctx context.Context, userID uuid.UUID, req *types.AnalyzeRequest) (*types.ScoreReport, *types.ATSScore, error) {
	resume, err := s.ownedResume(ctx, userID, req.ResumeID)
	if err != nil {
		return nil, nil, err
	}

	jobDescription, err := s.jobDescription(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	report := ats.CalculateScore(resume, jobDescription)

	breakdown := report.Breakdown
	score, err := s.store.UpsertATSScore(ctx, &db.ATSScoreUpsertInput{
		ResumeID:        resume.ID,
		UserID:          userID,
		Score:           report.Score,
		Breakdown:       &breakdown,
		Suggestions:     report.Improvements,
		MatchedKeywords: report.MatchedKeywords,
		MissingKeywords: report.MissingKeywords,
	})
	if err != nil {
		return nil, nil, s.storeError(resume.ID, err)
	}

	logger.Ctx(ctx).Info().
		Str("resume_id", resume.ID.String()).
		Int("score", report.Score).
		Bool("created", score.Created).
		Msg("resume analyzed")
	return report, score, nil
}

// SaveScore stores a score computed elsewhere for the caller's resume.
func (s *ATSService) SaveScore(ctx context.Context, userID uuid.UUID, req *types.SaveScoreRequest) (*types.ATSScore, error) {
	if req.Score == nil {
		return nil, &ErrValidation{Field: "score", Message: "required"}
	}

	resume, err := s.ownedResume(ctx, userID, req.ResumeID)
	if err != nil {
		return nil, err
	}

	score, err := s.store.UpsertATSScore(ctx, &db.ATSScoreUpsertInput{
		ResumeID:        resume.ID,
		UserID:          userID,
		Score:           *req.Score,
		Suggestions:     req.Suggestions,
		MatchedKeywords: req.MatchedKeywords,
		MissingKeywords: req.MissingKeywords,
	})
	if err != nil {
		return nil, s.storeError(resume.ID, err)
	}
	return score, nil
}

// GetScore returns the stored score for the caller's resume.
func (s *ATSService) GetScore(ctx context.Context, userID uuid.UUID, resumeID string) (*types.ATSScore, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, &ErrValidation{Field: "resume_id", Message: "must be a valid UUID"}
	}

	score, err := s.store.GetATSScoreByResumeID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ATS score: %w", err)
	}
	if score == nil {
		return nil, &ErrScoreNotFound{ResumeID: id}
	}
	if score.UserID != userID {
		return nil, &ErrForbidden{}
	}
	return score, nil
}

func (s *ATSService) ownedResume(ctx context.Context, userID uuid.UUID, resumeID string) (*types.Resume, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, &ErrValidation{Field: "resumeId", Message: "must be a valid UUID"}
	}

	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if resume == nil {
		return nil, &ErrResumeNotFound{ResumeID: id}
	}
	if resume.UserID != userID {
		return nil, &ErrForbidden{}
	}
	return resume, nil
}

// jobDescription returns the description from the request, fetching it when only a URL was given.
func (s *ATSService) jobDescription(ctx context.Context, req *types.AnalyzeRequest) (string, error) {
	if strings.TrimSpace(req.JobDescription) != "" || req.JobURL == "" {
		if ingestion.LooksLikeHTML(req.JobDescription) {
			text, err := ingestion.HTMLToText(req.JobDescription)
			if err != nil {
				return "", &ErrValidation{Field: "jobDescription", Message: "could not parse HTML"}
			}
			return text, nil
		}
		return req.JobDescription, nil
	}

	text, err := s.fetchJob(ctx, req.JobURL)
	if err != nil {
		return "", &ErrJobFetch{URL: req.JobURL, Cause: err}
	}
	if len(text) > types.MaxJobDescriptionLength {
		text = strings.ToValidUTF8(text[:types.MaxJobDescriptionLength], "")
	}
	return text, nil
}

// storeError maps a resume deleted between lookup and upsert to a 404.
func (s *ATSService) storeError(resumeID uuid.UUID, err error) error {
	if errors.Is(err, db.ErrResumeNotFound) {
		return &ErrResumeNotFound{ResumeID: resumeID}
	}
	return fmt.Errorf("failed to save ATS score: %w", err)
}
