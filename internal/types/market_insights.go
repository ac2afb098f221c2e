// Package types provides type definitions for the market insights and resume analysis payloads
// exchanged with the analytics backend.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillCount is a frequency tally for a single skill across the job corpus
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count" validate:"gte=0"`
}

// ToolCount is a frequency tally for a single tool across the job corpus
type ToolCount struct {
	Tool  string `json:"tool"`
	Count int    `json:"count" validate:"gte=0"`
}

// ExperienceDistribution is one histogram bucket of required years of experience
type ExperienceDistribution struct {
	Year  int `json:"year"`
	Count int `json:"count" validate:"gte=0"`
}

// SkillCooccurrence counts how often two skills appear in the same posting.
// The pair is unordered: (A, B) and (B, A) describe the same pair.
type SkillCooccurrence struct {
	SkillA string `json:"skill_A"`
	SkillB string `json:"skill_B"`
	Count  int    `json:"count" validate:"gte=0"`
}

// ToolCooccurrence counts how often two tools appear in the same posting.
type ToolCooccurrence struct {
	ToolA string `json:"tool_A"`
	ToolB string `json:"tool_B"`
	Count int    `json:"count" validate:"gte=0"`
}

// JobRoleDistribution is the number of postings matched to a role
type JobRoleDistribution struct {
	Role  string `json:"cmo_role_match"`
	Count int    `json:"count" validate:"gte=0"`
}

// MarketInsightsResponse is one page of market-wide aggregates.
// Every list is a single page; the matching Total* field is the full server-side count.
type MarketInsightsResponse struct {
	TopOverallSkills            []SkillCount             `json:"top_overall_skills" validate:"dive"`
	TotalOverallSkills          int                      `json:"total_overall_skills" validate:"gte=0"`
	TopOverallTools             []ToolCount              `json:"top_overall_tools" validate:"dive"`
	TotalOverallTools           int                      `json:"total_overall_tools" validate:"gte=0"`
	ExperienceDistribution      []ExperienceDistribution `json:"experience_distribution" validate:"dive"`
	TotalExperienceDistribution int                      `json:"total_experience_distribution" validate:"gte=0"`
	SkillCooccurrence           []SkillCooccurrence      `json:"skill_co_occurrence" validate:"dive"`
	TotalSkillCooccurrence      int                      `json:"total_skill_co_occurrence" validate:"gte=0"`
	ToolCooccurrence            []ToolCooccurrence       `json:"tool_co_occurrence" validate:"dive"`
	TotalToolCooccurrence       int                      `json:"total_tool_co_occurrence" validate:"gte=0"`
	AverageExperience           *float64                 `json:"average_experience,omitempty" validate:"omitempty,gte=0"`
}

// Validate checks the decoded response against its field rules.
func (r *MarketInsightsResponse) Validate() error {
	return validate.Struct(r)
}
