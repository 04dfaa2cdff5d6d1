package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/services"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score one resume against a job description",
	RunE:  runScreen,
}

var (
	screenJob        string
	screenResume     string
	screenStrictness string
	screenPositive   string
	screenNegative   string
)

func addFactorFlags(cmd *cobra.Command, strictness, positive, negative *string) {
	cmd.Flags().StringVarP(strictness, "strictness", "s", "", "Strictness level (defaults to DEFAULT_STRICTNESS)")
	cmd.Flags().StringVar(positive, "positive", "", "Positive factors to reward")
	cmd.Flags().StringVar(negative, "negative", "", "Negative factors to penalize")
}

func init() {
	screenCmd.Flags().StringVarP(&screenJob, "job", "j", "", "Job description text or path to a file containing it (required)")
	screenCmd.Flags().StringVarP(&screenResume, "resume", "r", "", "Path to the resume PDF or DOCX (required)")
	addFactorFlags(screenCmd, &screenStrictness, &screenPositive, &screenNegative)

	if err := screenCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := screenCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	jobDescription, err := readJobDescription(screenJob)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(screenResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file %s: %w", screenResume, err)
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd, p.cfg.Server.RequestTimeout)
	defer cancel()

	score, err := p.scoring.Score(ctx, services.ScoreInput{
		JobDescription:  jobDescription,
		ResumeBytes:     data,
		Source:          filepath.Base(screenResume),
		Strictness:      screenStrictness,
		PositiveFactors: screenPositive,
		NegativeFactors: screenNegative,
	})
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), score)
}
