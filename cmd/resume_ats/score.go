package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long: `Score a resume JSON file against a job description from a file or URL and print or save the report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runScore,
}

var (
	scoreConfigPath string
	scoreResumePath string
	scoreJob        string
	scoreJobURL     string
	scoreOut        string
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().StringVarP(&scoreResumePath, "resume", "r", "", "Path to resume JSON file")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	scoreCmd.Flags().StringVar(&scoreJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Path to write the report JSON (defaults to stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable report")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if scoreConfigPath != "" {
		loaded, err := config.LoadConfig(scoreConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	flags := config.Config{}
	if cmd.Flags().Changed("resume") {
		flags.Resume = scoreResumePath
	}
	if cmd.Flags().Changed("job") {
		flags.Job = scoreJob
	}
	if cmd.Flags().Changed("job-url") {
		flags.JobURL = scoreJobURL
	}
	if cmd.Flags().Changed("out") {
		flags.Out = scoreOut
	}
	flags.Verbose = scoreVerbose || cfg.Verbose
	cfg = flags.MergeWithDefaults(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := scoreResume(ctx, cfg, cmd.OutOrStdout())
	return err
}

// scoreResume scores cfg.Resume against cfg.Job or cfg.JobURL. The report is
// written to cfg.Out, or to out as JSON when no path is set.
func scoreResume(ctx context.Context, cfg config.Config, out io.Writer) (*types.ScoreReport, error) {
	if cfg.Resume == "" {
		return nil, fmt.Errorf("--resume is required (via flag or config)")
	}

	resume, err := loadResume(cfg.Resume)
	if err != nil {
		return nil, err
	}
	jobDescription, _, err := loadJob(ctx, cfg.Job, cfg.JobURL)
	if err != nil {
		return nil, err
	}

	report := ats.CalculateScore(resume, jobDescription)
	logger.Info().
		Str("resume", cfg.Resume).
		Int("score", report.Score).
		Int("matched", len(report.MatchedKeywords)).
		Int("missing", len(report.MissingKeywords)).
		Msg("resume scored")

	if cfg.Verbose {
		observability.NewPrinter(out).PrintScoreReport(report)
	}

	if cfg.Out != "" {
		if err := writeReport(cfg.Out, report); err != nil {
			return nil, err
		}
		_, _ = fmt.Fprintf(out, "Report written to %s\n", cfg.Out)
		return report, nil
	}

	if !cfg.Verbose {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}
	return report, nil
}
