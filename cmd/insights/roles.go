package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/observability"
	"github.com/jonathan/market-insights/internal/types"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List known job roles",
	Args:  cobra.NoArgs,
	RunE:  runRoles,
}

var roleCmd = &cobra.Command{
	Use:   "role <name>",
	Short: "Show skill and tool demand for one role",
	Long:  "Fetch one page of insights for a single job role. Role names may contain spaces or slashes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRole,
}

var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Show how postings are spread across roles",
	Args:  cobra.NoArgs,
	RunE:  runDistribution,
}

var (
	rolePage  int
	roleLimit int
)

func init() {
	roleCmd.Flags().IntVar(&rolePage, "page", 1, "Page number (1-based)")
	roleCmd.Flags().IntVar(&roleLimit, "limit", insights.DefaultRoleLimit, "Items per page")

	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(distributionCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	roles, err := current.client.GetRoles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get roles: %w", err)
	}
	return render(cmd, roles, func(p *observability.Printer) { p.PrintRoles(roles) })
}

func runRole(cmd *cobra.Command, args []string) error {
	role := args[0]
	resp, err := current.client.GetRoleInsights(cmd.Context(), role, rolePage, roleLimit)
	if err != nil {
		return fmt.Errorf("failed to get insights for role %q: %w", role, err)
	}

	page := types.Page{Number: rolePage, Limit: roleLimit}.Normalize(insights.DefaultRoleLimit)
	return render(cmd, resp, func(p *observability.Printer) {
		p.PrintRoleInsights(role, resp)
		printPageFooter(cmd, page, resp.TotalSkills)
	})
}

func runDistribution(cmd *cobra.Command, _ []string) error {
	dist, err := current.client.GetJobRoleDistribution(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get job role distribution: %w", err)
	}
	return render(cmd, dist, func(p *observability.Printer) { p.PrintRoleDistribution(dist) })
}
