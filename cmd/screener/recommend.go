package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/models"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the top candidates from a list of scores",
	Long:  "Reads candidate scores (a JSON array of objects with aggregate_score, or the output of the batch command) and asks for the top N recommendations.",
	RunE:  runRecommend,
}

var (
	recommendInput string
	recommendCount int
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendInput, "input", "i", "", "Path to the candidate scores JSON file (required)")
	recommendCmd.Flags().IntVarP(&recommendCount, "count", "n", 3, "Number of recommendations")

	if err := recommendCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(recommendInput)
	if err != nil {
		return fmt.Errorf("failed to read candidate scores file %s: %w", recommendInput, err)
	}

	candidates, err := parseCandidates(content)
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd, p.cfg.Server.RequestTimeout)
	defer cancel()

	recommendations, err := p.recommender.Recommend(ctx, candidates, recommendCount)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), recommendations)
}

// parseCandidates accepts either plain candidate objects or batch results,
// in which case each successful item's score becomes the candidate.
func parseCandidates(content []byte) ([]map[string]any, error) {
	var batch []models.BatchResult
	if err := json.Unmarshal(content, &batch); err == nil && isBatchOutput(batch) {
		candidates := make([]map[string]any, 0, len(batch))
		for _, item := range batch {
			if item.Score == nil {
				continue
			}
			candidate, err := scoreToCandidate(item.Score)
			if err != nil {
				return nil, fmt.Errorf("failed to convert score for %s: %w", item.Filename, err)
			}
			candidates = append(candidates, candidate)
		}
		return candidates, nil
	}

	var candidates []map[string]any
	if err := json.Unmarshal(content, &candidates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate scores JSON: %w", err)
	}
	return candidates, nil
}

func isBatchOutput(batch []models.BatchResult) bool {
	for _, item := range batch {
		if item.Filename == "" {
			return false
		}
	}
	return len(batch) > 0
}

// scoreToCandidate flattens a score into the map shape /recommend accepts,
// keyed by the JSON field names.
func scoreToCandidate(score *models.ResumeScore) (map[string]any, error) {
	candidate := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &candidate,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(score); err != nil {
		return nil, err
	}
	return candidate, nil
}
