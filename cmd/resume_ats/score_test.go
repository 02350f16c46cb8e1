package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreResume_StdoutJSON(t *testing.T) {
	var out bytes.Buffer
	report, err := scoreResume(context.Background(), config.Config{
		Resume: "testdata/resume.json",
		Job:    "testdata/job.txt",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 76, report.Score)

	var printed types.ScoreReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, *report, printed)
}

func TestScoreResume_WritesReportFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "reports", "report.json")

	var out bytes.Buffer
	_, err := scoreResume(context.Background(), config.Config{
		Resume: "testdata/resume.json",
		Job:    "testdata/job.txt",
		Out:    outPath,
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Report written to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var report types.ScoreReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 76, report.Score)
	assert.Equal(t, []string{"golang", "kubernetes", "terraform"}, report.MatchedKeywords)
	assert.NotNil(t, report.MissingKeywords)
}

func TestScoreResume_Verbose(t *testing.T) {
	var out bytes.Buffer
	_, err := scoreResume(context.Background(), config.Config{
		Resume:  "testdata/sparse_resume.json",
		Job:     "testdata/job.txt",
		Verbose: true,
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ATS SCORE REPORT")
	assert.Contains(t, out.String(), "Add education section")
	assert.False(t, json.Valid(out.Bytes()), "verbose mode prints the box instead of JSON")
}

func TestScoreResume_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		errText string
	}{
		{"missing resume flag", config.Config{Job: "testdata/job.txt"}, "--resume is required"},
		{"resume not found", config.Config{Resume: "testdata/nope.json", Job: "testdata/job.txt"}, "failed to read resume"},
		{"resume fails schema", config.Config{Resume: "testdata/invalid_resume.json", Job: "testdata/job.txt"}, "is invalid"},
		{"no job source", config.Config{Resume: "testdata/resume.json"}, "either --job or --job-url"},
		{"both job sources", config.Config{Resume: "testdata/resume.json", Job: "testdata/job.txt", JobURL: "https://example.com"}, "mutually exclusive"},
		{"job file missing", config.Config{Resume: "testdata/resume.json", Job: "testdata/nope.txt"}, "job description file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoreResume(context.Background(), tt.cfg, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestScoreResume_JobURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><main><p>Golang and Haskell engineers wanted</p></main></body></html>`))
	}))
	defer srv.Close()

	report, err := scoreResume(context.Background(), config.Config{
		Resume: "testdata/resume.json",
		JobURL: srv.URL + "/jobs/1",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, report.MatchedKeywords, "golang")
	assert.Contains(t, report.MissingKeywords, "haskell")
}

func TestScoreBatch(t *testing.T) {
	outDir := t.TempDir()

	var out bytes.Buffer
	entries, err := scoreBatch(context.Background(), batchOptions{
		Job:         "testdata/job.txt",
		OutDir:      outDir,
		Concurrency: 2,
		Resumes:     []string{"testdata/resume.json", "testdata/sparse_resume.json"},
	}, &out)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "resume", entries[0].Name)
	assert.Equal(t, 76, entries[0].Report.Score)
	assert.Equal(t, "sparse_resume", entries[1].Name)
	assert.Less(t, entries[1].Report.Score, entries[0].Report.Score)

	for _, name := range []string{"resume.report.json", "sparse_resume.report.json"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, out.String(), "BATCH RESULTS")
	assert.Contains(t, out.String(), "Resumes scored: 2")
}

func TestScoreBatch_BadResumeWritesNothing(t *testing.T) {
	outDir := t.TempDir()

	_, err := scoreBatch(context.Background(), batchOptions{
		Job:     "testdata/job.txt",
		OutDir:  outDir,
		Resumes: []string{"testdata/resume.json", "testdata/invalid_resume.json"},
	}, &bytes.Buffer{})
	require.Error(t, err)

	files, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScoreBatch_DuplicateReportNames(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile("testdata/resume.json")
	require.NoError(t, err)

	first := filepath.Join(dir, "a", "resume.json")
	second := filepath.Join(dir, "b", "resume.json")
	for _, path := range []string{first, second} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}

	outDir := filepath.Join(dir, "out")
	entries, err := scoreBatch(context.Background(), batchOptions{
		Job:     "testdata/job.txt",
		OutDir:  outDir,
		Resumes: []string{first, second},
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "resume.report.json")

	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "no report should be written")
}

func TestListKeywords(t *testing.T) {
	var out bytes.Buffer
	counts, err := listKeywords(context.Background(), "testdata/job_posting.html", "", 0, &out)
	require.NoError(t, err)

	got := map[string]int{}
	for _, kc := range counts {
		got[kc.Keyword] = kc.Count
	}
	assert.Equal(t, 2, got["kubernetes"])
	assert.Equal(t, 2, got["kafka"])
	assert.NotContains(t, got, "trackpageview")
	assert.NotContains(t, got, "careers")
	assert.Contains(t, out.String(), "JOB KEYWORDS")
}

func TestListKeywords_Limit(t *testing.T) {
	counts, err := listKeywords(context.Background(), "testdata/job_posting.html", "", 2, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Len(t, counts, 2)

	_, err = listKeywords(context.Background(), "testdata/job.txt", "", -1, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestReportName(t *testing.T) {
	assert.Equal(t, "alice", reportName("/tmp/resumes/alice.json"))
	assert.Equal(t, "bob.v2", reportName("bob.v2.json"))
	assert.Equal(t, "carol", reportName("carol"))
}
