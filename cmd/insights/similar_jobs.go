package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/market-insights/internal/observability"
)

var similarJobsCmd = &cobra.Command{
	Use:   "similar-jobs <session-id>",
	Short: "Page through more jobs similar to an analyzed resume",
	Long:  "Fetch another page of similar jobs for the session id returned by analyze. Page 1 is part of the analysis itself.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilarJobs,
}

var similarJobsPage int

func init() {
	similarJobsCmd.Flags().IntVar(&similarJobsPage, "page", 2, "Page number (1-based)")

	rootCmd.AddCommand(similarJobsCmd)
}

func runSimilarJobs(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	jobs, err := current.client.GetMoreSimilarJobs(cmd.Context(), sessionID, similarJobsPage)
	if err != nil {
		return fmt.Errorf("failed to get similar jobs: %w", err)
	}

	return render(cmd, jobs, func(p *observability.Printer) {
		p.PrintSimilarJobs(sessionID, similarJobsPage, jobs)
	})
}
