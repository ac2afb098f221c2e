// Package dashboard loads everything the market overview shows in one concurrent pass.
package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/market-insights/internal/types"
)

// Source is the subset of the analytics client the dashboard needs.
// *insights.Client satisfies it.
type Source interface {
	GetMarketInsights(ctx context.Context, page, limit int) (*types.MarketInsightsResponse, error)
	GetRoles(ctx context.Context) ([]string, error)
	GetJobRoleDistribution(ctx context.Context) ([]types.JobRoleDistribution, error)
	GetRoleInsights(ctx context.Context, role string, page, limit int) (*types.RoleInsightsResponse, error)
}

// Snapshot is one consistent load of the market overview.
// RoleInsights is nil unless a role was requested.
type Snapshot struct {
	Page           int                           `json:"page"`
	Limit          int                           `json:"limit"`
	MarketInsights *types.MarketInsightsResponse `json:"market_insights"`
	Roles          []string                      `json:"roles"`
	Distribution   []types.JobRoleDistribution   `json:"job_roles_distribution"`
	Role           string                        `json:"role,omitempty"`
	RoleInsights   *types.RoleInsightsResponse   `json:"role_insights,omitempty"`
}

// Load fetches market insights, roles and the role distribution concurrently.
func Load(ctx context.Context, src Source, page, limit int) (*Snapshot, error) {
	return LoadRole(ctx, src, "", page, limit)
}

// LoadRole is Load plus the insights of one role when role is non-empty.
// The first failing fetch cancels the rest and its error is returned as-is.
func LoadRole(ctx context.Context, src Source, role string, page, limit int) (*Snapshot, error) {
	g, gCtx := errgroup.WithContext(ctx)

	snap := &Snapshot{Page: page, Limit: limit, Role: role}
	var mu sync.Mutex // guards snap fields written by the fetches

	g.Go(func() error {
		resp, err := src.GetMarketInsights(gCtx, page, limit)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.MarketInsights = resp
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		roles, err := src.GetRoles(gCtx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Roles = roles
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		dist, err := src.GetJobRoleDistribution(gCtx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Distribution = dist
		mu.Unlock()
		return nil
	})

	if role != "" {
		g.Go(func() error {
			resp, err := src.GetRoleInsights(gCtx, role, page, limit)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.RoleInsights = resp
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
