package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/market-insights/internal/dashboard"
	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/observability"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the market overview in one go",
	Long: "Fetch market insights, the role list and the role distribution concurrently. " +
		"With --role, that role's insights are fetched alongside.",
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

var (
	dashboardPage  int
	dashboardLimit int
	dashboardRole  string
)

func init() {
	dashboardCmd.Flags().IntVar(&dashboardPage, "page", 1, "Page number (1-based)")
	dashboardCmd.Flags().IntVar(&dashboardLimit, "limit", insights.DefaultMarketLimit, "Items per page")
	dashboardCmd.Flags().StringVar(&dashboardRole, "role", "", "Also load insights for this role")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	snap, err := dashboard.LoadRole(cmd.Context(), current.client, dashboardRole, dashboardPage, dashboardLimit)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	return render(cmd, snap, func(p *observability.Printer) {
		p.PrintMarketInsights(snap.MarketInsights)
		p.PrintRoleDistribution(snap.Distribution)
		if snap.RoleInsights != nil {
			p.PrintRoleInsights(snap.Role, snap.RoleInsights)
		}
		p.PrintRoles(snap.Roles)
	})
}
