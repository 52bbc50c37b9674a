package repository

import (
	"context"

	"github.com/alexanderramin/horizon/internal/domain"
)

// ScenarioStats counts the active scoped entities of one scenario.
type ScenarioStats struct {
	ProjectCount    int
	ResourceCount   int
	MilestoneCount  int
	DependencyCount int
	AllocationCount int
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type SegmentFunctionRepo interface {
	Create(ctx context.Context, s *domain.SegmentFunction) error
	GetByID(ctx context.Context, id int64) (*domain.SegmentFunction, error)
	List(ctx context.Context) ([]*domain.SegmentFunction, error)
}

type ScenarioRepo interface {
	Create(ctx context.Context, s *domain.Scenario) error
	GetByID(ctx context.Context, id int64) (*domain.Scenario, error)
	List(ctx context.Context) ([]*domain.Scenario, error)
	Update(ctx context.Context, s *domain.Scenario) error
	SoftDelete(ctx context.Context, id int64) error
	CountActivePlannedByOwner(ctx context.Context, userID int64) (int, error)
	Stats(ctx context.Context, id int64) (ScenarioStats, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Project, error)
	ListBySegmentFunction(ctx context.Context, segmentFunctionID int64, scenarioID *int64) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	SoftDelete(ctx context.Context, id int64) error
}

type ProjectNumberSequenceRepo interface {
	NextProjectNumber(ctx context.Context, scenarioID *int64, prefix string) (string, error)
}

type RequirementRepo interface {
	Create(ctx context.Context, r *domain.Requirement) error
	GetByID(ctx context.Context, id int64) (*domain.Requirement, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Requirement, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Requirement, error)
	Update(ctx context.Context, r *domain.Requirement) error
	SoftDelete(ctx context.Context, id int64) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	SoftDelete(ctx context.Context, id int64) error
}

type CapabilityRepo interface {
	Create(ctx context.Context, c *domain.Capability) error
	GetByID(ctx context.Context, id int64) (*domain.Capability, error)
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.Capability, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Capability, error)
	Update(ctx context.Context, c *domain.Capability) error
	SoftDelete(ctx context.Context, id int64) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id int64) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Milestone, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	SoftDelete(ctx context.Context, id int64) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	GetByID(ctx context.Context, id int64) (*domain.Dependency, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Dependency, error)
	// IncomingCountsByProject counts active dependencies whose successor is a
	// project, or a milestone of that project, keyed by project id.
	IncomingCountsByProject(ctx context.Context, scenarioID *int64) (map[int64]int, error)
	Update(ctx context.Context, d *domain.Dependency) error
	SoftDelete(ctx context.Context, id int64) error
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) error
	GetByID(ctx context.Context, id int64) (*domain.Allocation, error)
	ListByResource(ctx context.Context, resourceID int64, scenarioID *int64) ([]*domain.Allocation, error)
	ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Allocation, error)
	Update(ctx context.Context, a *domain.Allocation) error
	SoftDelete(ctx context.Context, id int64) error
}

type AuditRepo interface {
	Append(ctx context.Context, e *domain.AuditEvent) error
	ListByScenario(ctx context.Context, scenarioID int64) ([]*domain.AuditEvent, error)
}
