package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var scoreBatchCmd = &cobra.Command{
	Use:   "score-batch [resume.json...]",
	Short: "Score several resumes against one job description",
	Long:  "Score every resume file against the same job description in parallel. One <name>.report.json is written per resume to --out-dir and a summary is printed.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScoreBatch,
}

var (
	batchJob         string
	batchJobURL      string
	batchOutDir      string
	batchConcurrency int
)

func init() {
	scoreBatchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	scoreBatchCmd.Flags().StringVar(&batchJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	scoreBatchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "", "Output directory for reports (required)")
	scoreBatchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", config.DefaultConcurrency, "Resumes scored in parallel")

	_ = scoreBatchCmd.MarkFlagRequired("out-dir")

	rootCmd.AddCommand(scoreBatchCmd)
}

func runScoreBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := scoreBatch(ctx, batchOptions{
		Job:         batchJob,
		JobURL:      batchJobURL,
		OutDir:      batchOutDir,
		Concurrency: batchConcurrency,
		Resumes:     args,
	}, cmd.OutOrStdout())
	return err
}

type batchOptions struct {
	Job         string
	JobURL      string
	OutDir      string
	Concurrency int
	Resumes     []string
}

// scoreBatch loads every resume up front so a bad file fails the run before
// any report is written. Resumes whose report names collide are rejected.
func scoreBatch(ctx context.Context, opts batchOptions, out io.Writer) ([]observability.BatchEntry, error) {
	if opts.Concurrency < 0 {
		return nil, fmt.Errorf("--concurrency must be non-negative")
	}

	names := make([]string, len(opts.Resumes))
	seen := make(map[string]string, len(opts.Resumes))
	for i, path := range opts.Resumes {
		name := reportName(path)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("resumes %s and %s would both write %s.report.json; rename one", prev, path, name)
		}
		seen[name] = path
		names[i] = name
	}

	resumes := make([]*types.Resume, 0, len(opts.Resumes))
	for _, path := range opts.Resumes {
		resume, err := loadResume(path)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}

	jobDescription, _, err := loadJob(ctx, opts.Job, opts.JobURL)
	if err != nil {
		return nil, err
	}

	reports, err := ats.ScoreBatch(ctx, resumes, jobDescription, &ats.BatchOptions{Concurrency: opts.Concurrency})
	if err != nil {
		return nil, fmt.Errorf("batch scoring failed: %w", err)
	}

	entries := make([]observability.BatchEntry, 0, len(reports))
	for i, report := range reports {
		name := names[i]
		if err := writeReport(filepath.Join(opts.OutDir, name+".report.json"), report); err != nil {
			return nil, err
		}
		entries = append(entries, observability.BatchEntry{Name: name, Report: report})
	}

	logger.Info().Int("resumes", len(entries)).Str("out_dir", opts.OutDir).Msg("batch scored")
	observability.NewPrinter(out).PrintBatchSummary(entries)
	return entries, nil
}

// reportName is the resume file name without directory or extension.
func reportName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
