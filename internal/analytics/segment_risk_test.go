package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentFunctionRisk_EmptyIsZero(t *testing.T) {
	got := SegmentFunctionRisk(7, nil, nil, testNow)

	assert.Zero(t, got.TotalScore)
	assert.Zero(t, got.ProjectCount)
	assert.Equal(t, domain.RiskLow, got.Band)
	assert.Empty(t, got.Projects)
	assert.NotEmpty(t, got.Summary)
	assert.Equal(t, noProjectsDetail, got.Budget.Detail)
}

func TestSegmentFunctionRisk_Aggregates(t *testing.T) {
	sid := int64(3)
	signals := []ProjectSignals{
		{
			Project: &domain.Project{ID: 1, Name: "Core banking", Budget: 12_000_000, ForecastCost: 16_000_000,
				StartDate: d(2024, 1, 1), EndDate: d(2025, 3, 31), ActualEndDate: d(2025, 5, 15)},
			AllocatedFTE: 1, RequiredCount: 2, IncomingDependencies: 4,
		},
		{
			Project:      &domain.Project{ID: 2, Name: "Portal", Budget: 1_000_000, ActualCost: 500_000, HealthStatus: domain.HealthGreen},
			AllocatedFTE: 1, RequiredCount: 1,
		},
	}

	got := SegmentFunctionRisk(9, &sid, signals, testNow)
	require.Len(t, got.Projects, 2)

	// 16.5M expected vs 13M budget.
	assert.Equal(t, 15, got.Budget.Score)
	assert.Equal(t, "26.9% over budget (+15)", got.Budget.Detail)
	// One of two projects delayed.
	assert.Equal(t, 15, got.Schedule.Score)
	// 2 FTE of 3 required = 66.7%.
	assert.Equal(t, 12, got.Resource.Score)
	// 4 incoming edges over 2 projects.
	assert.Equal(t, 5, got.Dependency.Score)
	// One large, one long-running.
	assert.Equal(t, 5, got.Complexity.Score)
	// 50% yellow.
	assert.Equal(t, 10, got.Health.Score)
	assert.Equal(t, 62, got.TotalScore)
	assert.Equal(t, domain.RiskHigh, got.Band)

	assert.Equal(t, 66, got.MaxProjectScore)
	assert.Equal(t, Distribution{Low: 1, High: 1}, got.Distribution)
	assert.Equal(t, 1, got.NeedsAttention)
	assert.Equal(t, &sid, got.ScenarioID)
}

func TestSegmentFunctionRisk_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(8) + 1
		signals := make([]ProjectSignals, n)
		for i := range signals {
			start := testNow.AddDate(0, 0, -rng.Intn(900))
			end := start.AddDate(0, 0, rng.Intn(800))
			signals[i] = ProjectSignals{
				Project: &domain.Project{
					ID:           int64(i + 1),
					Budget:       float64(rng.Intn(20_000_000)),
					ForecastCost: float64(rng.Intn(40_000_000)),
					StartDate:    &start,
					EndDate:      &end,
					HealthStatus: domain.HealthRed,
				},
				AllocatedFTE:         rng.Float64(),
				RequiredCount:        rng.Intn(5),
				IncomingDependencies: rng.Intn(12),
			}
		}
		got := SegmentFunctionRisk(1, nil, signals, testNow)
		assert.GreaterOrEqual(t, got.TotalScore, 0)
		assert.LessOrEqual(t, got.TotalScore, 100)
		assert.Equal(t, n, got.Distribution.Low+got.Distribution.Medium+got.Distribution.High)
	}
}

func TestSegmentFunctionRisk_DetailFormats(t *testing.T) {
	signals := []ProjectSignals{{
		Project: &domain.Project{ID: 1, Budget: 100, ActualCost: 80, EndDate: d(2026, 1, 1)},
	}}
	got := SegmentFunctionRisk(1, nil, signals, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "20.0% under budget (+0)", got.Budget.Detail)
	assert.Equal(t, "no resource requirements (+0)", got.Resource.Detail)
	assert.Zero(t, got.TotalScore)
}
