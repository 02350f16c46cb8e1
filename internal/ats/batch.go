package ats

import (
	"context"

	"github.com/jonathan/resume-ats/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency is used when BatchOptions.Concurrency is not positive.
const DefaultBatchConcurrency = 4

// BatchOptions configures ScoreBatch.
type BatchOptions struct {
	Concurrency int
}

// ScoreBatch scores several resumes against one job description in parallel.
// Keywords are extracted once and shared. Reports are returned in input order.
func ScoreBatch(ctx context.Context, resumes []*types.Resume, jobDescription string, opts *BatchOptions) ([]*types.ScoreReport, error) {
	concurrency := DefaultBatchConcurrency
	if opts != nil && opts.Concurrency > 0 {
		concurrency = opts.Concurrency
	}

	keywords := ExtractKeywords(jobDescription)
	reports := make([]*types.ScoreReport, len(resumes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, resume := range resumes {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// each goroutine writes only its own slot
			reports[i] = scoreWithKeywords(resume, keywords)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
