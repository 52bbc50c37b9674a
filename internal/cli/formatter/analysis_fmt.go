package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/horizon/internal/analytics"
	"github.com/alexanderramin/horizon/internal/contract"
)

// FormatOverlap renders a resource's peak concurrent allocation.
func FormatOverlap(o *contract.OverlapResponse) string {
	load := StyleGreen.Render(fmt.Sprintf("%d%%", o.MaxConcurrent))
	if o.OverAllocated {
		load = StyleRed.Render(fmt.Sprintf("%d%% over-allocated", o.MaxConcurrent))
	}
	return fmt.Sprintf("Resource %d (%s): peak %s", o.ResourceID, Scope(o.ScenarioID), load)
}

// FormatAllocation renders a saved allocation and the overlap it produced.
func FormatAllocation(resp *contract.AllocationResponse) string {
	a := resp.Allocation
	line := fmt.Sprintf("Allocation %d: resource %d → project %d at %d%% (%s)",
		a.ID, a.ResourceID, a.ProjectID, a.Percentage, Window(a.StartDate, a.EndDate))
	if a.MatchScore != nil {
		line += fmt.Sprintf(", match %d", *a.MatchScore)
	}
	return line + "\n" + FormatOverlap(&resp.Overlap)
}

// FormatMatch renders a capability/requirement score and its components.
func FormatMatch(b analytics.MatchBreakdown) string {
	rows := [][]string{
		{"exact", fmt.Sprintf("%.1f", b.Exact)},
		{"proficiency", fmt.Sprintf("%.1f", b.Proficiency)},
		{"experience", fmt.Sprintf("%.1f", b.Experience)},
		{"primary", fmt.Sprintf("%.1f", b.Primary)},
	}
	return fmt.Sprintf("Match score %s\n\n%s", Bold(strconv.Itoa(b.Score)),
		RenderTable([]string{"COMPONENT", "POINTS"}, rows))
}

// FormatSuggestions renders ranked resource suggestions for a project.
func FormatSuggestions(list []analytics.Suggestion) string {
	if len(list) == 0 {
		return Dim("No matching capabilities.")
	}
	rows := make([][]string, 0, len(list))
	for i, s := range list {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			itoa(s.ResourceID),
			itoa(s.CapabilityID),
			itoa(s.RequirementID),
			Bold(strconv.Itoa(s.Breakdown.Score)),
		})
	}
	return RenderTable([]string{"#", "RESOURCE", "CAPABILITY", "REQUIREMENT", "SCORE"}, rows)
}

// FormatProjectRisk renders one project's subscores.
func FormatProjectRisk(p *analytics.ProjectScore) string {
	bd := p.Breakdown
	rows := [][]string{
		{"health", strconv.Itoa(bd.Health)},
		{"budget", strconv.Itoa(bd.Budget)},
		{"schedule", strconv.Itoa(bd.Schedule)},
		{"resource", strconv.Itoa(bd.Resource)},
		{"dependency", strconv.Itoa(bd.Dependency)},
		{"complexity", strconv.Itoa(bd.Complexity)},
	}
	title := fmt.Sprintf("%s %s  %s  %s", p.ProjectNumber, Bold(p.Name), HealthIndicator(p.Health), BandIndicator(p.Band))
	return fmt.Sprintf("%s\nrisk %s\n\n%s", title, Bold(strconv.Itoa(p.Score)),
		RenderTable([]string{"FACTOR", "POINTS"}, rows))
}

// FormatSegmentRisk renders the aggregate and per-project risk of a segment
// function.
func FormatSegmentRisk(r *analytics.SegmentRisk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Segment function %d, %s\n", r.SegmentFunctionID, Scope(r.ScenarioID))
	fmt.Fprintf(&b, "risk %s %s across %d projects\n\n", Bold(strconv.Itoa(r.TotalScore)), BandIndicator(r.Band), r.ProjectCount)

	factors := [][]string{
		subscoreRow("health", r.Health),
		subscoreRow("budget", r.Budget),
		subscoreRow("schedule", r.Schedule),
		subscoreRow("resource", r.Resource),
		subscoreRow("dependency", r.Dependency),
		subscoreRow("complexity", r.Complexity),
	}
	b.WriteString(RenderTable([]string{"FACTOR", "SCORE", "DETAIL"}, factors))

	if len(r.Projects) > 0 {
		rows := make([][]string, 0, len(r.Projects))
		for _, p := range r.Projects {
			rows = append(rows, []string{p.ProjectNumber, Bold(p.Name), strconv.Itoa(p.Score), BandIndicator(p.Band)})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"NUMBER", "PROJECT", "RISK", "BAND"}, rows))
		d := r.Distribution
		fmt.Fprintf(&b, "\n%s, %s, %s\n",
			StyleRed.Render(fmt.Sprintf("%d High", d.High)),
			StyleYellow.Render(fmt.Sprintf("%d Medium", d.Medium)),
			StyleGreen.Render(fmt.Sprintf("%d Low", d.Low)))
	}
	if r.Summary != "" {
		b.WriteString("\n" + Dim(r.Summary) + "\n")
	}
	return RenderBox("Risk", strings.TrimRight(b.String(), "\n"))
}

func subscoreRow(name string, s analytics.Subscore) []string {
	return []string{name, fmt.Sprintf("%d/%d", s.Score, s.Max), Dim(s.Detail)}
}
