package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/market-insights/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintMarketInsights(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	avg := 3.4
	resp := &types.MarketInsightsResponse{
		TopOverallSkills:            []types.SkillCount{{Skill: "python", Count: 120}, {Skill: "sql", Count: 95}},
		TotalOverallSkills:          310,
		TopOverallTools:             []types.ToolCount{{Tool: "docker", Count: 80}},
		TotalOverallTools:           40,
		ExperienceDistribution:      []types.ExperienceDistribution{{Year: 2, Count: 15}},
		TotalExperienceDistribution: 9,
		SkillCooccurrence:           []types.SkillCooccurrence{{SkillA: "python", SkillB: "sql", Count: 33}},
		TotalSkillCooccurrence:      500,
		AverageExperience:           &avg,
	}

	p.PrintMarketInsights(resp)
	output := buf.String()

	assert.Contains(t, output, "MARKET INSIGHTS")
	assert.Contains(t, output, "Top skills (2 of 310)")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "Top tools (1 of 40)")
	assert.Contains(t, output, "3.4 years")
	assert.Contains(t, output, "python + sql")
	assert.NotContains(t, output, "Tools seen together")
}

func TestPrintMarketInsights_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMarketInsights(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRoleInsights_NoAverage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resp := &types.RoleInsightsResponse{
		TopSkills:   []types.RoleSkill{{Role: "Data Engineer", Skill: "spark", Count: 12}},
		TotalSkills: 12,
	}

	p.PrintRoleInsights("Data Engineer", resp)
	output := buf.String()

	assert.Contains(t, output, "ROLE INSIGHTS: DATA ENGINEER")
	assert.Contains(t, output, "spark")
	assert.Contains(t, output, "Average experience: n/a")
}

func TestPrintMarketInsights_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	skills := make([]types.SkillCount, 8)
	for i := range skills {
		skills[i] = types.SkillCount{Skill: "skill", Count: i}
	}

	p.PrintMarketInsights(&types.MarketInsightsResponse{TopOverallSkills: skills, TotalOverallSkills: 8})

	assert.Contains(t, buf.String(), "... and 3 more on this page")
}

func TestPrintRoles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoles([]string{"Data Analyst", "Data Engineer"})
	assert.Equal(t, "Data Analyst\nData Engineer\n", buf.String())

	buf.Reset()
	p.PrintRoles(nil)
	assert.Contains(t, buf.String(), "No roles available")
}

func TestPrintRoleDistribution_SortedByCount(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	dist := []types.JobRoleDistribution{
		{Role: "Data Analyst", Count: 25},
		{Role: "Data Scientist", Count: 75},
	}

	p.PrintRoleDistribution(dist)
	output := buf.String()

	assert.Contains(t, output, "JOB ROLE DISTRIBUTION")
	assert.Contains(t, output, "75.0%")
	assert.Less(t, strings.Index(output, "Data Scientist"), strings.Index(output, "Data Analyst"))
	// Input order is left untouched
	assert.Equal(t, "Data Analyst", dist[0].Role)
}

func TestPrintAnalysisResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.AnalysisResult{
		SimilarJobs: []types.SimilarJob{
			{JobTitle: "Analytics Engineer", SimilarityScore: 0.87, Role: "Data Engineer", URL: "https://jobs.test/42"},
		},
		TotalSimilarJobs: 30,
		GapAnalysis: types.GapAnalysis{
			MissingSkills:      []types.SkillDetail{{Name: "airflow", Count: 44}},
			TotalMissingSkills: 6,
			TotalUserSkills:    10,
		},
		Recommendations: types.Recommendations{
			Message:              "Add orchestration experience.",
			SkillsToLearn:        []types.SkillDetail{{Name: "airflow", Count: 44}},
			BasedOnYourStrengths: map[string][]string{"sql": {"dbt", "snowflake"}},
		},
		SessionID: "sess-123",
	}

	p.PrintAnalysisResult(result)
	output := buf.String()

	assert.Contains(t, output, "SIMILAR JOBS")
	assert.Contains(t, output, "Session: sess-123")
	assert.Contains(t, output, "Analytics Engineer")
	assert.Contains(t, output, "87%")
	assert.Contains(t, output, "https://jobs.test/42")
	assert.Contains(t, output, "30 similar jobs in total")
	assert.Contains(t, output, "GAP ANALYSIS")
	assert.Contains(t, output, "Missing skills (1 of 6)")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "sql → dbt, snowflake")
}

func TestPrintSimilarJobs_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSimilarJobs("sess-1", 4, nil)

	assert.Contains(t, buf.String(), "Page: 4")
	assert.Contains(t, buf.String(), "No more similar jobs")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 60))
}
