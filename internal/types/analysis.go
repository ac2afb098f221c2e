//nolint:revive // types is a standard Go package name pattern
package types

// SimilarJob is a ranked match between an analyzed resume and a posting.
// SimilarityScore is usually in [0, 1] but is passed through as the backend computed it,
// and URL may be relative or scheme-less.
type SimilarJob struct {
	JobTitle        string  `json:"job_title"`
	SimilarityScore float64 `json:"similarity_score"`
	Role            string  `json:"cmo_role_match"`
	URL             string  `json:"url,omitempty"`
}

// SkillDetail names a skill or tool with its market frequency
type SkillDetail struct {
	Name  string `json:"name"`
	Count int    `json:"count" validate:"gte=0"`
}

// GapAnalysis compares the skills and tools found in a resume with market demand.
type GapAnalysis struct {
	UserSkills          []SkillDetail `json:"user_skills" validate:"dive"`
	UserTools           []SkillDetail `json:"user_tools" validate:"dive"`
	MissingSkills       []SkillDetail `json:"missing_skills" validate:"dive"`
	MatchingSkills      []SkillDetail `json:"matching_skills" validate:"dive"`
	MissingTools        []SkillDetail `json:"missing_tools" validate:"dive"`
	MatchingTools       []SkillDetail `json:"matching_tools" validate:"dive"`
	TotalUserSkills     int           `json:"total_user_skills" validate:"gte=0"`
	TotalUserTools      int           `json:"total_user_tools" validate:"gte=0"`
	TotalMissingSkills  int           `json:"total_missing_skills" validate:"gte=0"`
	TotalMatchingSkills int           `json:"total_matching_skills" validate:"gte=0"`
	TotalMissingTools   int           `json:"total_missing_tools" validate:"gte=0"`
	TotalMatchingTools  int           `json:"total_matching_tools" validate:"gte=0"`
}

// Recommendations holds the learning suggestions produced for a resume.
// BasedOnYourStrengths maps a skill the candidate already has to related skills worth adding.
type Recommendations struct {
	Message              string              `json:"message"`
	SkillsToLearn        []SkillDetail       `json:"skills_to_learn" validate:"dive"`
	ToolsToLearn         []SkillDetail       `json:"tools_to_learn" validate:"dive"`
	BasedOnYourStrengths map[string][]string `json:"based_on_your_strengths"`
}

// AnalysisResult is the full result of one resume analysis.
// SessionID identifies the analysis for paging through further similar jobs.
type AnalysisResult struct {
	SimilarJobs      []SimilarJob    `json:"similar_jobs" validate:"dive"`
	TotalSimilarJobs int             `json:"total_similar_jobs" validate:"gte=0"`
	GapAnalysis      GapAnalysis     `json:"gap_analysis"`
	Recommendations  Recommendations `json:"recommendations"`
	SessionID        string          `json:"session_id" validate:"required"`
}

// Validate checks the decoded result against its field rules.
func (r *AnalysisResult) Validate() error {
	return validate.Struct(r)
}
