//nolint:revive // types is a standard Go package name pattern
package types

// RoleSkill is a skill tally scoped to one role
type RoleSkill struct {
	Role  string `json:"cmo_role_match"`
	Skill string `json:"skill"`
	Count int    `json:"count" validate:"gte=0"`
}

// RoleTool is a tool tally scoped to one role
type RoleTool struct {
	Role  string `json:"cmo_role_match"`
	Tool  string `json:"tool"`
	Count int    `json:"count" validate:"gte=0"`
}

// RoleInsightsResponse is the role-scoped analog of MarketInsightsResponse.
// AverageExperience is null when the backend has no experience data for the role.
type RoleInsightsResponse struct {
	TopSkills                   []RoleSkill              `json:"top_skills" validate:"dive"`
	TotalSkills                 int                      `json:"total_skills" validate:"gte=0"`
	TopTools                    []RoleTool               `json:"top_tools" validate:"dive"`
	TotalTools                  int                      `json:"total_tools" validate:"gte=0"`
	AverageExperience           *float64                 `json:"average_experience" validate:"omitempty,gte=0"`
	ExperienceDistribution      []ExperienceDistribution `json:"experience_distribution" validate:"dive"`
	TotalExperienceDistribution int                      `json:"total_experience_distribution" validate:"gte=0"`
	SkillCooccurrence           []SkillCooccurrence      `json:"skill_co_occurrence" validate:"dive"`
	TotalSkillCooccurrence      int                      `json:"total_skill_co_occurrence" validate:"gte=0"`
	ToolCooccurrence            []ToolCooccurrence       `json:"tool_co_occurrence" validate:"dive"`
	TotalToolCooccurrence       int                      `json:"total_tool_co_occurrence" validate:"gte=0"`
}

// Validate checks the decoded response against its field rules.
func (r *RoleInsightsResponse) Validate() error {
	return validate.Struct(r)
}
