package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrResumeNotFound indicates the resume does not exist.
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrScoreNotFound indicates no score has been stored for the resume.
type ErrScoreNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrScoreNotFound) Error() string {
	return fmt.Sprintf("ATS score not found for resume: %s", e.ResumeID)
}

// ErrForbidden indicates the caller does not own the resource.
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "access denied"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrJobFetch indicates the job posting at a URL could not be retrieved.
type ErrJobFetch struct {
	URL   string
	Cause error
}

func (e *ErrJobFetch) Error() string {
	return fmt.Sprintf("failed to fetch job description from %s: %v", e.URL, e.Cause)
}

func (e *ErrJobFetch) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		resumeNotFound *ErrResumeNotFound
		scoreNotFound  *ErrScoreNotFound
		forbidden      *ErrForbidden
		validation     *ErrValidation
		jobFetch       *ErrJobFetch
	)
	switch {
	case errors.As(err, &resumeNotFound), errors.As(err, &scoreNotFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &jobFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
