// Package main provides the screener command line tool.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "screener",
	Short:         "AI resume screener",
	Long:          "Scores resumes against a job description, screens batches and recommends the top candidates from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline activity to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pipeline is the service graph shared by the LLM-backed commands.
type pipeline struct {
	cfg         *config.Config
	logger      *zap.Logger
	extractor   services.TextExtractor
	scoring     services.ScoringService
	batch       services.BatchScreener
	recommender services.RecommendationService
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func newPipeline() (*pipeline, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := newLogger()
	metrics := services.NewMetrics(prometheus.NewRegistry())

	gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}

	extractor := services.NewTextExtractor(metrics, log)
	client := services.NewStructuredClient(gemini, metrics, log)
	scoring := services.NewScoringService(extractor, client, cfg.Screening.DefaultStrictness, log)

	return &pipeline{
		cfg:         cfg,
		logger:      log,
		extractor:   extractor,
		scoring:     scoring,
		batch:       services.NewBatchScreener(scoring, cfg.Screening.BatchConcurrency, metrics, log),
		recommender: services.NewRecommendationService(client, log),
	}, nil
}

// readJobDescription treats value as a path when it names a readable file.
func readJobDescription(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("job description is required")
	}
	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		content, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file %s: %w", value, err)
		}
		return string(content), nil
	}
	return value, nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
