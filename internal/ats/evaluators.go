package ats

import (
	"unicode/utf16"

	"github.com/jonathan/resume-ats/internal/types"
)

// Weights applied to the raw point totals of each structural check
const (
	sectionWeight = 0.3
	formatWeight  = 0.2
)

// Raw points awarded per section (70 total)
const (
	educationPoints      = 15
	experiencePoints     = 25
	skillsPoints         = 15
	projectsPoints       = 10
	certificationsPoints = 5
)

// Raw points awarded by the format check (25 total)
const (
	templatePoints    = 10
	titlePoints       = 5
	descriptionPoints = 10

	// minDescriptionLength is exclusive: a description must be longer than this
	minDescriptionLength = 20
)

// contactScore is a fixed placeholder; contact fields are not inspected.
const contactScore = 10

// Feedback messages
const (
	FeedbackAddEducation    = "Add education section"
	FeedbackAddExperience   = "Add work experience"
	FeedbackAddSkills       = "Add skills section"
	FeedbackUseTemplate     = "Use a professional template"
	FeedbackAddTitle        = "Add a resume title"
	FeedbackAddDescriptions = "Add detailed descriptions to experience"
)

// EvaluationResult is a weighted sub-score with feedback for the missing parts.
type EvaluationResult struct {
	Score    int
	Feedback []string
}

// EvaluateSections awards points for each populated section. Only the three
// mandatory sections (education, experience, skills) produce feedback.
func EvaluateSections(resume *types.Resume) EvaluationResult {
	sections := sectionsOf(resume)
	raw := 0
	feedback := make([]string, 0, 3)

	if len(sections.Education) > 0 {
		raw += educationPoints
	} else {
		feedback = append(feedback, FeedbackAddEducation)
	}

	if len(sections.Experience) > 0 {
		raw += experiencePoints
	} else {
		feedback = append(feedback, FeedbackAddExperience)
	}

	if len(sections.Skills) > 0 {
		raw += skillsPoints
	} else {
		feedback = append(feedback, FeedbackAddSkills)
	}

	if len(sections.Projects) > 0 {
		raw += projectsPoints
	}

	if len(sections.Certifications) > 0 {
		raw += certificationsPoints
	}

	return EvaluationResult{
		Score:    roundHalfUp(float64(raw) * sectionWeight),
		Feedback: feedback,
	}
}

// EvaluateFormat checks presentation: template, title and how detailed the
// experience entries are. An empty experience list skips the description check.
func EvaluateFormat(resume *types.Resume) EvaluationResult {
	raw := 0
	feedback := make([]string, 0, 3)

	var title, templateID string
	if resume != nil {
		title, templateID = resume.Title, resume.TemplateID
	}

	if templateID != "" {
		raw += templatePoints
	} else {
		feedback = append(feedback, FeedbackUseTemplate)
	}

	if title != "" {
		raw += titlePoints
	} else {
		feedback = append(feedback, FeedbackAddTitle)
	}

	experience := sectionsOf(resume).Experience
	if len(experience) > 0 {
		if hasDetailedDescription(experience) {
			raw += descriptionPoints
		} else {
			feedback = append(feedback, FeedbackAddDescriptions)
		}
	}

	return EvaluationResult{
		Score:    roundHalfUp(float64(raw) * formatWeight),
		Feedback: feedback,
	}
}

// EvaluateContact returns a constant score. It is a stub: contact details are
// not part of the resume document, so nothing is checked.
func EvaluateContact(_ *types.Resume) EvaluationResult {
	return EvaluationResult{
		Score:    contactScore,
		Feedback: []string{},
	}
}

func hasDetailedDescription(entries []types.SectionEntry) bool {
	for _, entry := range entries {
		desc, ok := entry.Field("description")
		if ok && utf16Len(desc) > minDescriptionLength {
			return true
		}
	}
	return false
}

// utf16Len counts UTF-16 code units, so a character outside the BMP counts twice.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func sectionsOf(resume *types.Resume) types.SectionData {
	if resume == nil {
		return types.SectionData{}
	}
	return resume.Sections
}
