package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the plain text extracted from a PDF or DOCX resume",
	Long:  "Runs only the text extractor. No LLM credential is needed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractEncode bool

func init() {
	extractCmd.Flags().BoolVar(&extractEncode, "resume-content", false, "Print the file as a resume_content string for the /module endpoints instead")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if extractEncode {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"resume_content": services.EncodeResumeContent(data),
		})
	}

	text, err := services.ExtractOrFail(services.NewTextExtractor(nil, newLogger()), data, args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
