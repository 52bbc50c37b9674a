package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// FormatScenarioList renders one row per scenario.
func FormatScenarioList(list []*domain.Scenario) string {
	if len(list) == 0 {
		return Dim("No scenarios found.")
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		parent := Dim("--")
		if s.ParentScenarioID != nil {
			parent = itoa(*s.ParentScenarioID)
		}
		rows = append(rows, []string{
			itoa(s.ID),
			Bold(s.Name),
			StatusBadge(s.Status),
			parent,
			s.UpdatedAt.Format("2006-01-02"),
		})
	}
	return RenderTable([]string{"ID", "NAME", "STATUS", "PARENT", "UPDATED"}, rows)
}

// FormatScenario renders the detail view of one scenario.
func FormatScenario(s *domain.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(s.Name), StatusBadge(s.Status))
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n", s.Description)
	}
	fmt.Fprintf(&b, "\n%s %d\n", Dim("id:"), s.ID)
	fmt.Fprintf(&b, "%s %d\n", Dim("owner:"), s.CreatedBy)
	if s.ParentScenarioID != nil {
		fmt.Fprintf(&b, "%s %d\n", Dim("cloned from:"), *s.ParentScenarioID)
	}
	if s.PublishedAt != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("published:"), s.PublishedAt.Format("2006-01-02 15:04"))
	}
	if len(s.Metadata) > 0 {
		keys := make([]string, 0, len(s.Metadata))
		for k := range s.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(Dim("metadata:") + "\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s = %v\n", k, s.Metadata[k])
		}
	}
	return RenderBox("Scenario", strings.TrimRight(b.String(), "\n"))
}

// FormatClone reports the new scenario and how many rows were copied.
func FormatClone(resp *contract.CloneResponse) string {
	c := resp.Copied
	rows := [][]string{
		{"projects", strconv.Itoa(c.Projects)},
		{"requirements", strconv.Itoa(c.Requirements)},
		{"resources", strconv.Itoa(c.Resources)},
		{"capabilities", strconv.Itoa(c.Capabilities)},
		{"milestones", strconv.Itoa(c.Milestones)},
		{"dependencies", strconv.Itoa(c.Dependencies)},
		{"allocations", strconv.Itoa(c.Allocations)},
	}
	return fmt.Sprintf("Cloned into %s [%d]\n\n%s", Bold(resp.Scenario.Name), resp.Scenario.ID,
		RenderTable([]string{"ENTITY", "COPIED"}, rows))
}

// FormatStats renders active row counts for a scenario.
func FormatStats(s *contract.ScenarioStatsResponse) string {
	rows := [][]string{
		{"projects", strconv.Itoa(s.ProjectCount)},
		{"resources", strconv.Itoa(s.ResourceCount)},
		{"milestones", strconv.Itoa(s.MilestoneCount)},
		{"dependencies", strconv.Itoa(s.DependencyCount)},
		{"allocations", strconv.Itoa(s.AllocationCount)},
	}
	return RenderBox(fmt.Sprintf("Scenario %d", s.ScenarioID), RenderTable([]string{"ENTITY", "ACTIVE"}, rows))
}

// FormatProjectList renders projects with their schedule and health.
func FormatProjectList(list []*domain.Project) string {
	if len(list) == 0 {
		return Dim("No projects found.")
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			itoa(p.ID),
			p.ProjectNumber,
			Bold(p.Name),
			HealthIndicator(p.HealthStatus),
			Window(p.StartDate, p.EndDate),
			fmt.Sprintf("%.0f / %.0f", p.ForecastCost, p.Budget),
		})
	}
	return RenderTable([]string{"ID", "NUMBER", "NAME", "HEALTH", "SCHEDULE", "FORECAST/BUDGET"}, rows)
}
