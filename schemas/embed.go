// Package schemas holds the JSON Schemas for resumes and score reports.
package schemas

import "embed"

// Schema file names.
const (
	Resume      = "resume.schema.json"
	ScoreReport = "score_report.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
