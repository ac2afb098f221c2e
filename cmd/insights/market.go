package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/observability"
	"github.com/jonathan/market-insights/internal/types"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show market-wide skill and tool demand",
	Long:  "Fetch one page of top skills, tools, experience levels and co-occurring pairs across all job postings.",
	Args:  cobra.NoArgs,
	RunE:  runMarket,
}

var (
	marketPage  int
	marketLimit int
)

func init() {
	marketCmd.Flags().IntVar(&marketPage, "page", 1, "Page number (1-based)")
	marketCmd.Flags().IntVar(&marketLimit, "limit", insights.DefaultMarketLimit, "Items per page")

	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, _ []string) error {
	resp, err := current.client.GetMarketInsights(cmd.Context(), marketPage, marketLimit)
	if err != nil {
		return fmt.Errorf("failed to get market insights: %w", err)
	}

	page := types.Page{Number: marketPage, Limit: marketLimit}.Normalize(insights.DefaultMarketLimit)
	return render(cmd, resp, func(p *observability.Printer) {
		p.PrintMarketInsights(resp)
		printPageFooter(cmd, page, resp.TotalOverallSkills)
	})
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func printPageFooter(cmd *cobra.Command, page types.Page, total int) {
	pages := types.TotalPages(total, page.Limit)
	if pages == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d\n", page.Number, pages)
	if types.HasMore(total, page.Number, page.Limit) {
		fmt.Fprintf(cmd.OutOrStdout(), "Next: --page %d\n", page.Number+1)
	}
}
