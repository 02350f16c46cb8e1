package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the keywords extracted from a job description",
	Long:  "Print the keywords a job description would be scored on, most frequent first, with their counts.",
	RunE:  runKeywords,
}

var (
	keywordsJob    string
	keywordsJobURL string
	keywordsLimit  int
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	keywordsCmd.Flags().StringVar(&keywordsJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	keywordsCmd.Flags().IntVarP(&keywordsLimit, "limit", "n", 0, "Show at most N keywords (0 for all)")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := listKeywords(ctx, keywordsJob, keywordsJobURL, keywordsLimit, cmd.OutOrStdout())
	return err
}

func listKeywords(ctx context.Context, job, jobURL string, limit int, out io.Writer) ([]ats.KeywordCount, error) {
	if limit < 0 {
		return nil, fmt.Errorf("--limit must be non-negative")
	}

	jobDescription, _, err := loadJob(ctx, job, jobURL)
	if err != nil {
		return nil, err
	}

	counts := ats.KeywordFrequencies(jobDescription)
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}

	observability.NewPrinter(out).PrintKeywordFrequencies(counts)
	return counts, nil
}
