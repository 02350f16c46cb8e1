// Package observability renders human-readable summaries for verbose CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the outer width of a printed box
	boxWidth = 60
	// maxItemsToShow caps list sections before "... and N more"
	maxItemsToShow = 5
	barWidth       = 20
)

// Printer writes boxed summaries to out.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // terminal output; nothing to recover
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad fits s into exactly width runes, truncating with "...".
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// bar draws value out of total as a fixed-width gauge.
func bar(value, total int) string {
	filled := 0
	if total > 0 {
		filled = min(barWidth, value*barWidth/total)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	for _, item := range items[:min(len(items), maxItemsToShow)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintScoreReport outputs the overall score, the per-category breakdown and
// the keyword, strength and improvement lists.
func (p *Printer) PrintScoreReport(report *types.ScoreReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:   %3d/100  %s\n\n", report.Score, bar(report.Score, 100))
	b := report.Breakdown
	fmt.Fprintf(&sb, "Keywords:  %3d/40   %s\n", b.KeywordScore, bar(b.KeywordScore, 40))
	fmt.Fprintf(&sb, "Sections:  %3d/30   %s\n", b.SectionScore, bar(b.SectionScore, 30))
	fmt.Fprintf(&sb, "Format:    %3d/20   %s\n", b.FormatScore, bar(b.FormatScore, 20))
	fmt.Fprintf(&sb, "Contact:   %3d/10   %s\n\n", b.ContactScore, bar(b.ContactScore, 10))

	if len(report.MatchedKeywords) > 0 {
		fmt.Fprintf(&sb, "Matched:   %s\n", strings.Join(report.MatchedKeywords, ", "))
	}
	if len(report.MissingKeywords) > 0 {
		fmt.Fprintf(&sb, "Missing:   %s\n", strings.Join(report.MissingKeywords, ", "))
	}
	if len(report.MatchedKeywords)+len(report.MissingKeywords) > 0 {
		sb.WriteString("\n")
	}

	writeList(&sb, "Strengths", report.Strengths)
	writeList(&sb, "Improvements", report.Improvements)

	p.printBox("ATS SCORE REPORT", strings.TrimRight(sb.String(), "\n"))
}

// PrintKeywordFrequencies outputs the keywords extracted from a job description
// with their occurrence counts.
func (p *Printer) PrintKeywordFrequencies(counts []ats.KeywordCount) {
	if len(counts) == 0 {
		p.printBox("JOB KEYWORDS", "No keywords found")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Extracted keywords: %d\n\n", len(counts))
	for i, kc := range counts {
		fmt.Fprintf(&sb, "%2d. %-30s x%d\n", i+1, kc.Keyword, kc.Count)
	}
	p.printBox("JOB KEYWORDS", strings.TrimRight(sb.String(), "\n"))
}

// BatchEntry pairs a scored file with its report.
type BatchEntry struct {
	Name   string
	Report *types.ScoreReport
}

// PrintBatchSummary outputs one line per scored resume in the order given.
func (p *Printer) PrintBatchSummary(entries []BatchEntry) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Resumes scored: %d\n\n", len(entries))
	for _, e := range entries {
		if e.Report == nil {
			continue
		}
		fmt.Fprintf(&sb, "%3d  %s\n", e.Report.Score, e.Name)
	}
	p.printBox("BATCH RESULTS", strings.TrimRight(sb.String(), "\n"))
}
