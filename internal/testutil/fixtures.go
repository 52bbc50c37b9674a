package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

var testNameCounter atomic.Int64

// Date returns a pointer to midnight UTC on the given day.
func Date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func NewTestUser(role domain.Role) *domain.User {
	n := testNameCounter.Add(1)
	return &domain.User{
		Name:      fmt.Sprintf("%s-%02d", role, n),
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// Scenario options
type ScenarioOption func(*domain.Scenario)

func WithDescription(d string) ScenarioOption {
	return func(s *domain.Scenario) {
		s.Description = d
	}
}

func WithMetadata(m map[string]any) ScenarioOption {
	return func(s *domain.Scenario) {
		s.Metadata = m
	}
}

func WithScenarioSegment(id int64) ScenarioOption {
	return func(s *domain.Scenario) {
		s.SegmentFunctionID = &id
	}
}

func Published(by int64) ScenarioOption {
	return func(s *domain.Scenario) {
		now := time.Now().UTC()
		s.Status = domain.ScenarioPublished
		s.PublishedBy = &by
		s.PublishedAt = &now
	}
}

func NewTestScenario(ownerID int64, name string, opts ...ScenarioOption) *domain.Scenario {
	now := time.Now().UTC()
	s := &domain.Scenario{
		Name:      name,
		Status:    domain.ScenarioPlanned,
		CreatedBy: ownerID,
		Metadata:  map[string]any{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Project options
type ProjectOption func(*domain.Project)

func WithBudget(budget, actual, forecast float64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = budget
		p.ActualCost = actual
		p.ForecastCost = forecast
	}
}

func WithSchedule(start, end *time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithActualEnd(d *time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.ActualEndDate = d
	}
}

func WithDesiredCompletion(d *time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.DesiredCompletionDate = d
	}
}

func WithHealth(h domain.HealthStatus) ProjectOption {
	return func(p *domain.Project) {
		p.HealthStatus = h
	}
}

func WithSegment(id int64) ProjectOption {
	return func(p *domain.Project) {
		p.SegmentFunctionID = &id
	}
}

func WithProjectNumber(n string) ProjectOption {
	return func(p *domain.Project) {
		p.ProjectNumber = n
	}
}

// NewTestProject builds a project scoped to scenarioID (nil for baseline).
// The default project number is unique per process.
func NewTestProject(scenarioID *int64, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ScenarioID:    scenarioID,
		ProjectNumber: fmt.Sprintf("TST-%04d", testNameCounter.Add(1)),
		Name:          name,
		HealthStatus:  domain.HealthGreen,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestResource(scenarioID *int64, name string) *domain.Resource {
	now := time.Now().UTC()
	return &domain.Resource{
		ScenarioID:  scenarioID,
		Name:        name,
		Email:       fmt.Sprintf("res%d@example.com", testNameCounter.Add(1)),
		CapacityPct: 100,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NewTestMilestone(scenarioID *int64, projectID int64, name string, due *time.Time) *domain.Milestone {
	now := time.Now().UTC()
	return &domain.Milestone{
		ScenarioID: scenarioID,
		ProjectID:  projectID,
		Name:       name,
		EndDate:    due,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewTestDependency builds a finish-to-start edge between two endpoints.
func NewTestDependency(scenarioID *int64, pred, succ domain.EntityRef) *domain.Dependency {
	now := time.Now().UTC()
	return &domain.Dependency{
		ScenarioID:     scenarioID,
		Predecessor:    domain.Endpoint{Kind: pred.Kind, ID: pred.ID, Anchor: domain.AnchorEnd},
		Successor:      domain.Endpoint{Kind: succ.Kind, ID: succ.ID, Anchor: domain.AnchorStart},
		DependencyType: domain.DependencyFS,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Allocation options
type AllocationOption func(*domain.Allocation)

func WithWindow(start, end *time.Time) AllocationOption {
	return func(a *domain.Allocation) {
		a.StartDate = start
		a.EndDate = end
	}
}

func WithMilestone(id int64) AllocationOption {
	return func(a *domain.Allocation) {
		a.MilestoneID = &id
	}
}

func WithLinks(capabilityID, requirementID int64) AllocationOption {
	return func(a *domain.Allocation) {
		a.CapabilityID = &capabilityID
		a.RequirementID = &requirementID
	}
}

func NewTestAllocation(scenarioID *int64, resourceID, projectID int64, pct int, opts ...AllocationOption) *domain.Allocation {
	now := time.Now().UTC()
	a := &domain.Allocation{
		ScenarioID: scenarioID,
		ResourceID: resourceID,
		ProjectID:  projectID,
		Percentage: pct,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestCapability(scenarioID *int64, resourceID int64, app, tech, role string, p domain.Proficiency, primary bool) *domain.Capability {
	now := time.Now().UTC()
	return &domain.Capability{
		Skill:      domain.Skill{Application: app, Technology: tech, Role: role, Proficiency: p},
		ScenarioID: scenarioID,
		ResourceID: resourceID,
		IsPrimary:  primary,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func NewTestRequirement(scenarioID *int64, projectID int64, app, tech, role string, p domain.Proficiency, required int) *domain.Requirement {
	now := time.Now().UTC()
	return &domain.Requirement{
		Skill:         domain.Skill{Application: app, Technology: tech, Role: role, Proficiency: p},
		ScenarioID:    scenarioID,
		ProjectID:     projectID,
		RequiredCount: required,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
