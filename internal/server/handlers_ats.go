package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/types"
)

// maxRequestBodyBytes bounds decoded request bodies; the job description limit dominates.
const maxRequestBodyBytes = 1 << 20

// handleAnalyze scores a resume against a job description and stores the result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.AnalyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	report, score, err := s.ats.Analyze(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.AnalyzeResponse{
		Success:  true,
		Analysis: report,
		ATSScore: score,
	})
}

// handleSaveScore stores a score supplied by the client.
func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.SaveScoreRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	score, err := s.ats.SaveScore(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.AnalyzeResponse{
		Success:  true,
		ATSScore: score,
	})
}

// handleGetScore returns the stored score for a resume.
func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	score, err := s.ats.GetScore(r.Context(), userID, r.PathValue("resume_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.AnalyzeResponse{
		Success:  true,
		ATSScore: score,
	})
}

// decodeAndValidate decodes the JSON body into req and runs its validation tags.
// It writes a 400 response and returns false on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

// serviceError writes the status mapped from err. Unexpected errors are logged
// and reported without internal detail.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractValidationErrors turns validator errors into a single message.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "validation error: invalid request"
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s - %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s - %s", fe.Field(), fe.Tag()))
		}
	}
	return "validation error: " + strings.Join(parts, "; ")
}
