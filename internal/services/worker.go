package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

const (
	defaultBatchConcurrency = 3

	batchValidationError = "Data validation error from LLM output"
)

// BatchJob is one uploaded file of a batch.
type BatchJob struct {
	Filename string
	Data     []byte
}

// BatchInput carries the settings shared by every file of a batch.
type BatchInput struct {
	JobDescription  string
	Strictness      string
	PositiveFactors string
	NegativeFactors string
}

// BatchScreener scores many resumes against one job description. A failing
// file never affects its neighbours.
type BatchScreener interface {
	ScreenAll(ctx context.Context, jobs []BatchJob, input BatchInput) []models.BatchResult
}

type batchScreener struct {
	scoring     ScoringService
	concurrency int
	metrics     *Metrics
	logger      *zap.Logger
}

func NewBatchScreener(scoring ScoringService, concurrency int, metrics *Metrics, log *zap.Logger) BatchScreener {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &batchScreener{
		scoring:     scoring,
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger.OrNop(log),
	}
}

// ScreenAll implements BatchScreener. results[i] always belongs to jobs[i].
func (b *batchScreener) ScreenAll(ctx context.Context, jobs []BatchJob, input BatchInput) []models.BatchResult {
	batchID := uuid.New()
	results := make([]models.BatchResult, len(jobs))

	workers := min(b.concurrency, len(jobs))
	b.logger.Info("starting batch",
		zap.String("batch_id", batchID.String()),
		zap.Int("files", len(jobs)),
		zap.Int("workers", workers),
	)

	queue := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for i := range jobs {
			select {
			case queue <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		workerID := w + 1
		g.Go(func() error {
			for i := range queue {
				results[i] = b.screenOne(gctx, jobs[i], input)
				b.logger.Debug("batch item done",
					zap.String("batch_id", batchID.String()),
					zap.Int("worker", workerID),
					zap.String("filename", results[i].Filename),
					zap.Bool("ok", results[i].Score != nil),
				)
			}
			return nil
		})
	}

	// Workers never return an error; per-file failures live in results.
	_ = g.Wait()

	// Slots never reached because ctx ended.
	for i := range results {
		if results[i].Score == nil && results[i].Error == "" {
			results[i] = models.BatchResult{
				Filename: SecureFilename(jobs[i].Filename),
				Error:    fmt.Sprintf("Error processing resume: %v", ctx.Err()),
			}
			b.metrics.ObserveBatchItem("error")
		}
	}

	b.logger.Info("batch finished", zap.String("batch_id", batchID.String()))
	return results
}

func (b *batchScreener) screenOne(ctx context.Context, job BatchJob, input BatchInput) (result models.BatchResult) {
	filename := SecureFilename(job.Filename)
	result.Filename = filename

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while screening resume", zap.String("filename", filename), zap.Any("panic", r))
			result = models.BatchResult{
				Filename: filename,
				Error:    fmt.Sprintf("Error processing resume: %v", r),
			}
			b.metrics.ObserveBatchItem("error")
		}
	}()

	score, err := b.scoring.Score(ctx, ScoreInput{
		JobDescription:  input.JobDescription,
		ResumeBytes:     job.Data,
		Source:          filename,
		Strictness:      input.Strictness,
		PositiveFactors: input.PositiveFactors,
		NegativeFactors: input.NegativeFactors,
	})
	if err != nil {
		b.logger.Warn("failed to screen resume", zap.String("filename", filename), zap.Error(err))
		b.metrics.ObserveBatchItem("error")

		var schemaErr *SchemaValidationError
		if errors.As(err, &schemaErr) {
			result.Error = batchValidationError
			result.Details = schemaErr.Details
			return result
		}
		result.Error = fmt.Sprintf("Error processing resume: %v", err)
		return result
	}

	b.metrics.ObserveBatchItem("ok")
	result.Score = score
	result.ResumeContent = EncodeResumeContent(job.Data)
	return result
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces an uploaded name to a safe base name made of ASCII
// letters, digits, '_', '.' and '-'.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return "resume"
	}
	return name
}
