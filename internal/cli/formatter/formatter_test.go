package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/analytics"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "NAME"}, [][]string{
		{StyleRed.Render("longer"), "x"},
		{"s", Bold("y")},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	// The second column starts after the widest first cell plus the gap.
	lastCells := []string{"NAME", "", "x", "y"}
	for i, line := range lines {
		if i == 1 {
			continue
		}
		assert.Equal(t, len("longer")+colGap, lipgloss.Width(line)-lipgloss.Width(lastCells[i]), line)
	}
	assert.Empty(t, RenderTable(nil, nil))
}

func TestWindow(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-01 → 2026-04-30", Window(&start, &end))
	assert.Equal(t, "2026-02-01 → ..", Window(&start, nil))
	assert.Contains(t, Window(nil, nil), "untimed")
}

func TestScope(t *testing.T) {
	id := int64(4)
	assert.Equal(t, "baseline", Scope(nil))
	assert.Equal(t, "scenario 4", Scope(&id))
}

func TestFormatScenario_ShowsLineageAndMetadata(t *testing.T) {
	parent := int64(2)
	out := FormatScenario(&domain.Scenario{
		ID:               5,
		Name:             "What-if",
		Status:           domain.ScenarioPlanned,
		ParentScenarioID: &parent,
		Metadata:         map[string]any{"quarter": "Q1", "owner": "ops"},
	})
	assert.Contains(t, out, "What-if")
	assert.Contains(t, out, "cloned from:")
	assert.Less(t, strings.Index(out, "owner = ops"), strings.Index(out, "quarter = Q1"))
}

func TestFormatScenarioList_Empty(t *testing.T) {
	assert.Contains(t, FormatScenarioList(nil), "No scenarios found.")
}

func TestFormatClone(t *testing.T) {
	out := FormatClone(&contract.CloneResponse{
		Scenario: &domain.Scenario{ID: 9, Name: "Plan (copy)"},
		Copied:   contract.CloneCounts{Projects: 2, Allocations: 3},
	})
	assert.Contains(t, out, "Plan (copy)")
	assert.Contains(t, out, "allocations")
}

func TestFormatOverlap(t *testing.T) {
	over := FormatOverlap(&contract.OverlapResponse{ResourceID: 1, MaxConcurrent: 120, OverAllocated: true})
	assert.Contains(t, over, "120% over-allocated")
	assert.Contains(t, over, "baseline")

	ok := FormatOverlap(&contract.OverlapResponse{ResourceID: 1, MaxConcurrent: 80})
	assert.NotContains(t, ok, "over-allocated")
}

func TestFormatSegmentRisk(t *testing.T) {
	sid := int64(3)
	out := FormatSegmentRisk(&analytics.SegmentRisk{
		SegmentFunctionID: 1,
		ScenarioID:        &sid,
		ProjectCount:      1,
		TotalScore:        42,
		Band:              domain.RiskMedium,
		Projects: []analytics.ProjectScore{
			{ProjectNumber: "PRJ-0001", Name: "Payments", Score: 42, Band: domain.RiskMedium},
		},
		Distribution: analytics.Distribution{Medium: 1},
		Summary:      "One project needs attention.",
	})
	assert.Contains(t, out, "scenario 3")
	assert.Contains(t, out, "PRJ-0001")
	assert.Contains(t, out, "1 Medium")
	assert.Contains(t, out, "One project needs attention.")
}

func TestFormatSuggestions_Empty(t *testing.T) {
	assert.Contains(t, FormatSuggestions(nil), "No matching capabilities.")
}

func TestBandIndicator(t *testing.T) {
	assert.Contains(t, BandIndicator(domain.RiskHigh), "HIGH")
	assert.Contains(t, BandIndicator(""), "UNKNOWN")
}
