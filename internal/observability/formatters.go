// Package observability provides logging, client metrics and formatted terminal output.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/market-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pageLine renders "shown N of M" for one page of a paginated list.
func pageLine(label string, shown, total int) string {
	return fmt.Sprintf("%s (%d of %d):\n", label, shown, total)
}

// writeCounts appends up to maxItemsToShow name/count rows.
func writeCounts(sb *strings.Builder, label string, total int, names []string, counts []int) {
	if len(names) == 0 {
		return
	}
	sb.WriteString(pageLine(label, len(names), total))
	count := min(len(names), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %-32s %6d\n", names[i], counts[i]))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more on this page\n", len(names)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func writeExperience(sb *strings.Builder, avg *float64, dist []types.ExperienceDistribution, total int) {
	if avg != nil {
		sb.WriteString(fmt.Sprintf("Average experience: %.1f years\n\n", *avg))
	} else {
		sb.WriteString("Average experience: n/a\n\n")
	}
	if len(dist) == 0 {
		return
	}
	sb.WriteString(pageLine("Experience distribution", len(dist), total))
	for _, bucket := range dist {
		sb.WriteString(fmt.Sprintf("  %2d yrs  %6d\n", bucket.Year, bucket.Count))
	}
	sb.WriteString("\n")
}

func writePairs(sb *strings.Builder, label string, total int, a, b []string, counts []int) {
	if len(a) == 0 {
		return
	}
	sb.WriteString(pageLine(label, len(a), total))
	count := min(len(a), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s + %s  %d\n", a[i], b[i], counts[i]))
	}
	sb.WriteString("\n")
}

// PrintMarketInsights outputs one page of market-wide aggregates.
func (p *Printer) PrintMarketInsights(resp *types.MarketInsightsResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder

	names, counts := make([]string, len(resp.TopOverallSkills)), make([]int, len(resp.TopOverallSkills))
	for i, s := range resp.TopOverallSkills {
		names[i], counts[i] = s.Skill, s.Count
	}
	writeCounts(&sb, "Top skills", resp.TotalOverallSkills, names, counts)

	names, counts = make([]string, len(resp.TopOverallTools)), make([]int, len(resp.TopOverallTools))
	for i, tl := range resp.TopOverallTools {
		names[i], counts[i] = tl.Tool, tl.Count
	}
	writeCounts(&sb, "Top tools", resp.TotalOverallTools, names, counts)

	writeExperience(&sb, resp.AverageExperience, resp.ExperienceDistribution, resp.TotalExperienceDistribution)
	writeSkillPairs(&sb, resp.SkillCooccurrence, resp.TotalSkillCooccurrence)
	writeToolPairs(&sb, resp.ToolCooccurrence, resp.TotalToolCooccurrence)

	p.printBox("MARKET INSIGHTS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintRoleInsights outputs one page of role-scoped aggregates.
func (p *Printer) PrintRoleInsights(role string, resp *types.RoleInsightsResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder

	names, counts := make([]string, len(resp.TopSkills)), make([]int, len(resp.TopSkills))
	for i, s := range resp.TopSkills {
		names[i], counts[i] = s.Skill, s.Count
	}
	writeCounts(&sb, "Top skills", resp.TotalSkills, names, counts)

	names, counts = make([]string, len(resp.TopTools)), make([]int, len(resp.TopTools))
	for i, tl := range resp.TopTools {
		names[i], counts[i] = tl.Tool, tl.Count
	}
	writeCounts(&sb, "Top tools", resp.TotalTools, names, counts)

	writeExperience(&sb, resp.AverageExperience, resp.ExperienceDistribution, resp.TotalExperienceDistribution)
	writeSkillPairs(&sb, resp.SkillCooccurrence, resp.TotalSkillCooccurrence)
	writeToolPairs(&sb, resp.ToolCooccurrence, resp.TotalToolCooccurrence)

	p.printBox("ROLE INSIGHTS: "+strings.ToUpper(role), strings.TrimSuffix(sb.String(), "\n\n"))
}

func writeSkillPairs(sb *strings.Builder, pairs []types.SkillCooccurrence, total int) {
	a, b, counts := make([]string, len(pairs)), make([]string, len(pairs)), make([]int, len(pairs))
	for i, pair := range pairs {
		a[i], b[i], counts[i] = pair.SkillA, pair.SkillB, pair.Count
	}
	writePairs(sb, "Skills seen together", total, a, b, counts)
}

func writeToolPairs(sb *strings.Builder, pairs []types.ToolCooccurrence, total int) {
	a, b, counts := make([]string, len(pairs)), make([]string, len(pairs)), make([]int, len(pairs))
	for i, pair := range pairs {
		a[i], b[i], counts[i] = pair.ToolA, pair.ToolB, pair.Count
	}
	writePairs(sb, "Tools seen together", total, a, b, counts)
}

// PrintRoles outputs the known job roles, one per line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRoles(roles []string) {
	if len(roles) == 0 {
		fmt.Fprintln(p.out, "No roles available")
		return
	}
	for _, role := range roles {
		fmt.Fprintln(p.out, role)
	}
}

// PrintRoleDistribution outputs postings per role, largest first.
func (p *Printer) PrintRoleDistribution(dist []types.JobRoleDistribution) {
	if len(dist) == 0 {
		return
	}

	sorted := make([]types.JobRoleDistribution, len(dist))
	copy(sorted, dist)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	total := 0
	for _, d := range sorted {
		total += d.Count
	}

	var sb strings.Builder
	for _, d := range sorted {
		share := 0.0
		if total > 0 {
			share = float64(d.Count) / float64(total) * 100
		}
		sb.WriteString(fmt.Sprintf("%-32s %6d %5.1f%%\n", d.Role, d.Count, share))
	}

	p.printBox("JOB ROLE DISTRIBUTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysisResult outputs the similar jobs, gap analysis and recommendations of one analysis.
func (p *Printer) PrintAnalysisResult(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session: %s\n\n", result.SessionID))
	writeSimilarJobs(&sb, result.SimilarJobs)
	if types.HasMore(result.TotalSimilarJobs, 1, len(result.SimilarJobs)) {
		sb.WriteString(fmt.Sprintf("\n%d similar jobs in total, more with:\n", result.TotalSimilarJobs))
		sb.WriteString(fmt.Sprintf("  similar-jobs %s --page 2\n", result.SessionID))
	}
	p.printBox("SIMILAR JOBS", strings.TrimSuffix(sb.String(), "\n"))

	gap := result.GapAnalysis
	sb.Reset()
	sb.WriteString(fmt.Sprintf("Your skills:      %d\n", gap.TotalUserSkills))
	sb.WriteString(fmt.Sprintf("Your tools:       %d\n", gap.TotalUserTools))
	sb.WriteString(fmt.Sprintf("Matching skills:  %d\n", gap.TotalMatchingSkills))
	sb.WriteString(fmt.Sprintf("Matching tools:   %d\n", gap.TotalMatchingTools))
	sb.WriteString("\n")
	writeDetails(&sb, "Missing skills", gap.TotalMissingSkills, gap.MissingSkills)
	writeDetails(&sb, "Missing tools", gap.TotalMissingTools, gap.MissingTools)
	p.printBox("GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	rec := result.Recommendations
	sb.Reset()
	if rec.Message != "" {
		sb.WriteString(rec.Message + "\n\n")
	}
	writeDetails(&sb, "Skills to learn", len(rec.SkillsToLearn), rec.SkillsToLearn)
	writeDetails(&sb, "Tools to learn", len(rec.ToolsToLearn), rec.ToolsToLearn)
	if len(rec.BasedOnYourStrengths) > 0 {
		sb.WriteString("Based on your strengths:\n")
		keys := make([]string, 0, len(rec.BasedOnYourStrengths))
		for k := range rec.BasedOnYourStrengths {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s → %s\n", k, strings.Join(rec.BasedOnYourStrengths[k], ", ")))
		}
	}
	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilarJobs outputs one page of similar jobs for a session.
func (p *Printer) PrintSimilarJobs(sessionID string, page int, jobs []types.SimilarJob) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session: %s  Page: %d\n\n", sessionID, page))
	if len(jobs) == 0 {
		sb.WriteString("No more similar jobs")
	}
	writeSimilarJobs(&sb, jobs)
	p.printBox("SIMILAR JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeSimilarJobs(sb *strings.Builder, jobs []types.SimilarJob) {
	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, job.JobTitle))
		sb.WriteString(fmt.Sprintf("    Score: %.0f%%  Role: %s\n", job.SimilarityScore*100, job.Role))
		if job.URL != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", job.URL))
		}
	}
}

func writeDetails(sb *strings.Builder, label string, total int, details []types.SkillDetail) {
	if len(details) == 0 {
		return
	}
	sb.WriteString(pageLine(label, len(details), total))
	count := min(len(details), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s (%d postings)\n", details[i].Name, details[i].Count))
	}
	if len(details) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(details)-maxItemsToShow))
	}
	sb.WriteString("\n")
}
