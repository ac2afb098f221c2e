package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Analyze a resume against current job postings",
	Long: "Upload a resume and print similar jobs, the skill and tool gap against market demand, " +
		"and learning recommendations. The session id printed with the result pages through more similar jobs.",
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeLimit     int
	analyzeFields    []string
	analyzeFileField string
)

func init() {
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", insights.DefaultAnalyzeLimit, "Number of similar jobs in the first page")
	analyzeCmd.Flags().StringArrayVar(&analyzeFields, "field", nil, "Extra form field as key=value (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeFileField, "file-field", insights.DefaultFileField, "Form field name for the resume file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	form := insights.NewForm()
	if err := form.AddFileFromPath(analyzeFileField, args[0]); err != nil {
		return err
	}

	for _, field := range analyzeFields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --field %q: expected key=value", field)
		}
		form.AddField(key, value)
	}

	result, err := current.client.AnalyzeResume(cmd.Context(), form, analyzeLimit)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	return render(cmd, result, func(p *observability.Printer) { p.PrintAnalysisResult(result) })
}
