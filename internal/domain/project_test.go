package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPlannedCompletion_PrefersDesiredDate(t *testing.T) {
	p := &Project{EndDate: day(2025, 3, 31)}
	assert.Equal(t, *day(2025, 3, 31), *p.PlannedCompletion())

	p.DesiredCompletionDate = day(2025, 2, 28)
	assert.Equal(t, *day(2025, 2, 28), *p.PlannedCompletion())

	assert.Nil(t, (&Project{}).PlannedCompletion())
}

func TestExpectedCost(t *testing.T) {
	assert.Equal(t, 120.0, (&Project{ActualCost: 100, ForecastCost: 120}).ExpectedCost())
	assert.Equal(t, 150.0, (&Project{ActualCost: 150, ForecastCost: 120}).ExpectedCost())
}

func TestDurationDays(t *testing.T) {
	p := &Project{StartDate: day(2025, 1, 1), EndDate: day(2025, 12, 31)}
	assert.Equal(t, 364, p.DurationDays())
	assert.Zero(t, (&Project{StartDate: day(2025, 1, 1)}).DurationDays())
}

func TestProjectValidate(t *testing.T) {
	cases := []struct {
		name    string
		project Project
		ok      bool
	}{
		{"valid", Project{Name: "Apollo", Budget: 10}, true},
		{"blank name", Project{Name: " "}, false},
		{"negative budget", Project{Name: "A", Budget: -1}, false},
		{"bad health", Project{Name: "A", HealthStatus: "Blue"}, false},
		{"end before start", Project{Name: "A", StartDate: day(2025, 2, 1), EndDate: day(2025, 1, 1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.project.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestDependencyDefaultAnchors(t *testing.T) {
	cases := []struct {
		typ       DependencyType
		pred, suc Anchor
	}{
		{DependencyFS, AnchorEnd, AnchorStart},
		{DependencySS, AnchorStart, AnchorStart},
		{DependencyFF, AnchorEnd, AnchorEnd},
		{DependencySF, AnchorStart, AnchorEnd},
	}
	for _, tc := range cases {
		d := &Dependency{DependencyType: tc.typ}
		d.DefaultAnchors()
		assert.Equal(t, tc.pred, d.Predecessor.Anchor, "type=%s", tc.typ)
		assert.Equal(t, tc.suc, d.Successor.Anchor, "type=%s", tc.typ)
	}

	d := &Dependency{}
	d.DefaultAnchors()
	assert.Equal(t, DependencyFS, d.DependencyType)

	short := &Dependency{DependencyType: "F"}
	assert.NotPanics(t, short.DefaultAnchors)
	assert.Empty(t, short.Predecessor.Anchor)
	assert.ErrorIs(t, short.Validate(), ErrInvalid)
}

func TestDependencyValidate(t *testing.T) {
	valid := Dependency{
		Predecessor:    Endpoint{Kind: KindProject, ID: 1, Anchor: AnchorEnd},
		Successor:      Endpoint{Kind: KindMilestone, ID: 1, Anchor: AnchorStart},
		DependencyType: DependencyFS,
	}
	assert.NoError(t, valid.Validate(), "same id under different kinds is not a self-reference")

	self := valid
	self.Successor = Endpoint{Kind: KindProject, ID: 1, Anchor: AnchorStart}
	assert.ErrorIs(t, self.Validate(), ErrInvalid)

	badKind := valid
	badKind.Predecessor.Kind = "task"
	assert.ErrorIs(t, badKind.Validate(), ErrInvalid)

	badType := valid
	badType.DependencyType = "XX"
	assert.ErrorIs(t, badType.Validate(), ErrInvalid)
}

func TestAllocationValidate(t *testing.T) {
	a := Allocation{ResourceID: 1, ProjectID: 1, Percentage: 100}
	assert.NoError(t, a.Validate())

	a.Percentage = 101
	assert.ErrorIs(t, a.Validate(), ErrInvalid)

	a.Percentage = 50
	a.StartDate, a.EndDate = day(2025, 2, 1), day(2025, 1, 1)
	assert.ErrorIs(t, a.Validate(), ErrInvalid)
}

func TestProficiencyRank(t *testing.T) {
	assert.Less(t, ProficiencyBeginner.Rank(), ProficiencyIntermediate.Rank())
	assert.Less(t, ProficiencyIntermediate.Rank(), ProficiencyAdvanced.Rank())
	assert.Less(t, ProficiencyAdvanced.Rank(), ProficiencyExpert.Rank())
	assert.Zero(t, Proficiency("Guru").Rank())
	assert.False(t, Proficiency("").IsValid())
}

func TestPatchTime_ZeroClears(t *testing.T) {
	cur := day(2025, 1, 1)
	assert.Equal(t, cur, PatchTime(cur, nil))
	assert.Nil(t, PatchTime(cur, &time.Time{}))
	next := day(2025, 2, 1)
	assert.Equal(t, next, PatchTime(cur, next))
}
