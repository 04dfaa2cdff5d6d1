package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

func TestScreenAllIsolatesFailures(t *testing.T) {
	scoring, gen, _ := newTestScoring(validScoreReply)
	metrics := NewMetrics(prometheus.NewRegistry())
	batch := NewBatchScreener(scoring, 2, metrics, nil)

	jobs := []BatchJob{
		{Filename: "alice.pdf", Data: []byte("alice resume")},
		{Filename: "bob.pdf", Data: []byte("bob resume")},
		{Filename: "broken.pdf", Data: []byte("corrupt")},
		{Filename: "carol.pdf", Data: []byte("carol resume")},
		{Filename: "dave.pdf", Data: []byte("dave resume")},
	}

	results := batch.ScreenAll(context.Background(), jobs, BatchInput{JobDescription: "Go engineer"})
	require.Len(t, results, len(jobs))

	for i, r := range results {
		assert.Equal(t, jobs[i].Filename, r.Filename, "slot %d", i)
		if i == 2 {
			assert.Nil(t, r.Score)
			assert.Contains(t, r.Error, "Error processing resume: ")
			assert.Contains(t, r.Error, "could not extract text")
			assert.Empty(t, r.ResumeContent)
			continue
		}
		require.NotNil(t, r.Score, "slot %d", i)
		assert.Empty(t, r.Error)
		assert.Equal(t, 7.3, r.Score.AggregateScore)
		assert.Equal(t, string(jobs[i].Data), r.ResumeContent)
	}

	assert.Len(t, gen.calls(), 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.batchItems.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.batchItems.WithLabelValues("error")))
}

func TestScreenAllReportsValidationDetails(t *testing.T) {
	scoring, _, _ := newTestScoring(`{"name": "Jane"}`)
	batch := NewBatchScreener(scoring, 3, nil, nil)

	results := batch.ScreenAll(context.Background(), []BatchJob{{Filename: "jane.pdf", Data: []byte("cv")}}, BatchInput{JobDescription: "jd"})
	require.Len(t, results, 1)

	assert.Equal(t, "Data validation error from LLM output", results[0].Error)
	details, ok := results[0].Details.([]FieldError)
	require.True(t, ok)
	assert.NotEmpty(t, details)
}

type scoringFunc func(ctx context.Context, input ScoreInput) (*models.ResumeScore, error)

func (f scoringFunc) Score(ctx context.Context, input ScoreInput) (*models.ResumeScore, error) {
	return f(ctx, input)
}

func TestScreenAllRecoversPanics(t *testing.T) {
	scoring := scoringFunc(func(_ context.Context, input ScoreInput) (*models.ResumeScore, error) {
		if input.Source == "boom.pdf" {
			panic("pdf reader exploded")
		}
		return &models.ResumeScore{Name: input.Source}, nil
	})
	batch := NewBatchScreener(scoring, 2, nil, nil)

	results := batch.ScreenAll(context.Background(), []BatchJob{
		{Filename: "a.pdf", Data: []byte("a")},
		{Filename: "boom.pdf", Data: []byte("b")},
		{Filename: "c.pdf", Data: []byte("c")},
	}, BatchInput{JobDescription: "jd"})

	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Score)
	assert.Equal(t, "Error processing resume: pdf reader exploded", results[1].Error)
	assert.NotNil(t, results[2].Score)
}

func TestScreenAllBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	release := make(chan struct{})

	scoring := scoringFunc(func(_ context.Context, input ScoreInput) (*models.ResumeScore, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		inFlight.Add(-1)
		return &models.ResumeScore{Name: input.Source}, nil
	})
	batch := NewBatchScreener(scoring, 2, nil, nil)

	jobs := make([]BatchJob, 6)
	for i := range jobs {
		jobs[i] = BatchJob{Filename: fmt.Sprintf("r%d.pdf", i), Data: []byte("x")}
	}

	done := make(chan []models.BatchResult)
	go func() { done <- batch.ScreenAll(context.Background(), jobs, BatchInput{JobDescription: "jd"}) }()
	close(release)
	results := <-done

	require.Len(t, results, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("r%d.pdf", i), r.Score.Name)
	}
}

func TestScreenAllCancelledContext(t *testing.T) {
	scoring := scoringFunc(func(ctx context.Context, _ ScoreInput) (*models.ResumeScore, error) {
		return nil, ctx.Err()
	})
	batch := NewBatchScreener(scoring, 1, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := batch.ScreenAll(ctx, []BatchJob{{Filename: "a.pdf"}, {Filename: "b.pdf"}}, BatchInput{JobDescription: "jd"})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Nil(t, r.Score)
		assert.Contains(t, r.Error, context.Canceled.Error())
	}
}

func TestScreenAllEmpty(t *testing.T) {
	batch := NewBatchScreener(scoringFunc(func(context.Context, ScoreInput) (*models.ResumeScore, error) {
		return nil, errors.New("unreachable")
	}), 3, nil, nil)

	assert.Empty(t, batch.ScreenAll(context.Background(), nil, BatchInput{}))
}

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":            "resume.pdf",
		"My Resume (final).pdf": "My_Resume_final.pdf",
		"../../etc/passwd":      "passwd",
		`C:\Users\jane\cv.docx`: "cv.docx",
		"":                      "resume",
		"...":                   "resume",
		"jürgen müller.pdf":     "jrgen_mller.pdf",
	}

	for input, want := range cases {
		assert.Equal(t, want, SecureFilename(input), "input %q", input)
	}
}
