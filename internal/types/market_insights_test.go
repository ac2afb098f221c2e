//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketInsightsResponse_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"top_overall_skills": [{"skill": "python", "count": 120}],
		"total_overall_skills": 310,
		"top_overall_tools": [{"tool": "docker", "count": 80}],
		"total_overall_tools": 95,
		"experience_distribution": [{"year": 3, "count": 40}],
		"total_experience_distribution": 12,
		"skill_co_occurrence": [{"skill_A": "python", "skill_B": "sql", "count": 33}],
		"total_skill_co_occurrence": 1000,
		"tool_co_occurrence": [{"tool_A": "docker", "tool_B": "kubernetes", "count": 21}],
		"total_tool_co_occurrence": 400,
		"average_experience": 3.5
	}`

	var resp MarketInsightsResponse
	err := json.Unmarshal([]byte(jsonInput), &resp)
	require.NoError(t, err)

	assert.Equal(t, "python", resp.TopOverallSkills[0].Skill)
	assert.Equal(t, 310, resp.TotalOverallSkills)
	assert.Equal(t, "docker", resp.TopOverallTools[0].Tool)
	assert.Equal(t, 3, resp.ExperienceDistribution[0].Year)
	assert.Equal(t, "sql", resp.SkillCooccurrence[0].SkillB)
	assert.Equal(t, "kubernetes", resp.ToolCooccurrence[0].ToolB)
	require.NotNil(t, resp.AverageExperience)
	assert.Equal(t, 3.5, *resp.AverageExperience)

	// Totals are server-reported, not page lengths
	assert.NotEqual(t, len(resp.TopOverallSkills), resp.TotalOverallSkills)
	assert.NoError(t, resp.Validate())
}

func TestMarketInsightsResponse_AverageExperienceOmitted(t *testing.T) {
	var resp MarketInsightsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"top_overall_skills": []}`), &resp))
	assert.Nil(t, resp.AverageExperience)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "average_experience")
}

func TestMarketInsightsResponse_Validate(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name    string
		resp    MarketInsightsResponse
		wantErr bool
	}{
		{
			name:    "empty page",
			resp:    MarketInsightsResponse{},
			wantErr: false,
		},
		{
			name: "negative skill count",
			resp: MarketInsightsResponse{
				TopOverallSkills: []SkillCount{{Skill: "go", Count: -3}},
			},
			wantErr: true,
		},
		{
			name:    "negative total",
			resp:    MarketInsightsResponse{TotalOverallTools: -1},
			wantErr: true,
		},
		{
			name:    "negative average experience",
			resp:    MarketInsightsResponse{AverageExperience: &negative},
			wantErr: true,
		},
		{
			name: "negative co-occurrence count",
			resp: MarketInsightsResponse{
				ToolCooccurrence: []ToolCooccurrence{{ToolA: "git", ToolB: "jira", Count: -1}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
