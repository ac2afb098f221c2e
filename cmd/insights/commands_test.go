package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/market-insights/internal/dashboard"
	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/types"
)

func TestMarketCommand_Text(t *testing.T) {
	server, seen := newBackend(t)

	out, err := runCLI(t, "market", "--backend-url", server.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "MARKET INSIGHTS")
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "Page 1 of 16")
	assert.Contains(t, out, "Next: --page 2")
	assert.Equal(t, []string{"/market_insights?page=1&limit=20"}, seen.all())
}

func TestMarketCommand_JSON(t *testing.T) {
	server, seen := newBackend(t)

	out, err := runCLI(t, "market", "--backend-url", server.URL, "--output", "json", "--page", "2", "--limit", "5")
	require.NoError(t, err)

	var resp types.MarketInsightsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 310, resp.TotalOverallSkills)
	assert.Equal(t, []string{"/market_insights?page=2&limit=5"}, seen.all())
}

func TestRolesCommand(t *testing.T) {
	server, _ := newBackend(t)

	out, err := runCLI(t, "roles", "--backend-url", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst\nData Scientist\n", out)
}

func TestRoleCommand_EncodesName(t *testing.T) {
	server, seen := newBackend(t)

	out, err := runCLI(t, "role", "Data/Scientist", "--backend-url", server.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "ROLE INSIGHTS: DATA/SCIENTIST")
	assert.Equal(t, []string{"/market_insights/Data%2FScientist?page=1&limit=10"}, seen.all())
}

func TestRoleCommand_BackendError(t *testing.T) {
	server, _ := newBackend(t)

	_, err := runCLI(t, "role", "Unknown", "--backend-url", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Role not found")

	var apiErr *insights.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDistributionCommand(t *testing.T) {
	server, _ := newBackend(t)

	out, err := runCLI(t, "distribution", "--backend-url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "JOB ROLE DISTRIBUTION")
	assert.Contains(t, out, "75.0%")
}

func TestAnalyzeCommand(t *testing.T) {
	server, seen := newBackend(t)

	out, err := runCLI(t, "analyze", filepath.Join("testdata", "resume.pdf"),
		"--backend-url", server.URL, "--field", "source=cli", "--limit", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Session: 3f2c9a4e-1b7d-4c55-9d0e-6a8f0b2e7c11")
	assert.Contains(t, out, "GAP ANALYSIS")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Equal(t, []string{"/analyze_resume"}, seen.all())
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	server, _ := newBackend(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing file",
			args:    []string{"analyze", filepath.Join("testdata", "nope.pdf")},
			wantErr: "failed to open resume file",
		},
		{
			name:    "malformed field",
			args:    []string{"analyze", filepath.Join("testdata", "resume.pdf"), "--field", "novalue"},
			wantErr: "expected key=value",
		},
		{
			name:    "missing argument",
			args:    []string{"analyze"},
			wantErr: "accepts 1 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append(tt.args, "--backend-url", server.URL)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSimilarJobsCommand(t *testing.T) {
	server, seen := newBackend(t)

	out, err := runCLI(t, "similar-jobs", "sess 1", "--page", "3", "--backend-url", server.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Data Engineer II")
	assert.Contains(t, out, "Page: 3")
	assert.Equal(t, []string{"/similar_jobs/sess%201?page=3&limit=10"}, seen.all())
}

func TestDashboardCommand(t *testing.T) {
	server, seen := newBackend(t)

	out, err := runCLI(t, "dashboard", "--role", "Data Scientist", "--output", "json", "--backend-url", server.URL)
	require.NoError(t, err)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.NotNil(t, snap.MarketInsights)
	assert.Len(t, snap.Roles, 2)
	assert.Len(t, snap.Distribution, 2)
	require.NotNil(t, snap.RoleInsights)
	assert.Equal(t, "Data Scientist", snap.Role)
	assert.Len(t, seen.all(), 4)
}

func TestInvalidOutputFormat(t *testing.T) {
	server, seen := newBackend(t)

	_, err := runCLI(t, "roles", "--output", "yaml", "--backend-url", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'output'")
	assert.Empty(t, seen.all())
}

func TestConfigFile(t *testing.T) {
	server, _ := newBackend(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend_url":"`+server.URL+`","output":"json"}`), 0o644))

	out, err := runCLI(t, "roles", "--config", path)
	require.NoError(t, err)

	var roles []string
	require.NoError(t, json.Unmarshal([]byte(out), &roles))
	assert.Equal(t, []string{"Data Analyst", "Data Scientist"}, roles)
}

func TestMetricsOut(t *testing.T) {
	server, _ := newBackend(t)
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")

	_, err := runCLI(t, "role", "Unknown", "--backend-url", server.URL, "--metrics-out", metricsPath)
	require.Error(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `insights_client_requests_total{endpoint="role_insights",outcome="http_error"} 1`)
}

func TestValidateResponseCommand(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "roles.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[1, 2]`), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantOut string
		wantErr string
	}{
		{
			name:    "valid embedded schema",
			args:    []string{"validate-response", "analyze_resume", filepath.Join("testdata", "analysis_result.json")},
			wantOut: "is a valid analyze_resume response",
		},
		{
			name:    "invalid document",
			args:    []string{"validate-response", "roles", invalid},
			wantErr: "does not match the roles response schema",
		},
		{
			name:    "unknown endpoint",
			args:    []string{"validate-response", "salaries", invalid},
			wantErr: `unknown endpoint "salaries"`,
		},
		{
			name:    "schema file on disk",
			args:    []string{"validate-response", "market_insights", filepath.Join("testdata", "market_insights.json"), "--schema", "schemas/market_insights.schema.json"},
			wantOut: "is a valid market_insights response",
		},
		{
			name:    "missing schema file",
			args:    []string{"validate-response", "roles", invalid, "--schema", "schemas/salaries.schema.json"},
			wantErr: "schema file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}
