package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/services"
)

var batchCmd = &cobra.Command{
	Use:   "batch [resume files...]",
	Short: "Score several resumes against one job description",
	Long:  "Scores every resume concurrently. A file that fails is reported in place and does not stop the others.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchJob        string
	batchStrictness string
	batchPositive   string
	batchNegative   string
)

func init() {
	batchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Job description text or path to a file containing it (required)")
	addFactorFlags(batchCmd, &batchStrictness, &batchPositive, &batchNegative)

	if err := batchCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobDescription, err := readJobDescription(batchJob)
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	jobs := make([]services.BatchJob, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			p.logger.Sugar().Warnf("failed to read %s: %v", path, err)
		}
		jobs[i] = services.BatchJob{Filename: path, Data: data}
	}

	// The deadline scales with the number of rounds the worker pool needs.
	workers := max(p.cfg.Screening.BatchConcurrency, 1)
	rounds := (len(jobs) + workers - 1) / workers
	ctx, cancel := withTimeout(cmd, time.Duration(rounds)*p.cfg.Server.RequestTimeout)
	defer cancel()

	results := p.batch.ScreenAll(ctx, jobs, services.BatchInput{
		JobDescription:  jobDescription,
		Strictness:      batchStrictness,
		PositiveFactors: batchPositive,
		NegativeFactors: batchNegative,
	})

	return writeJSON(cmd.OutOrStdout(), results)
}

func withTimeout(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
