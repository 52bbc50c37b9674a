package service

import (
	"context"

	"github.com/alexanderramin/horizon/internal/analytics"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
)

type UserService interface {
	Register(ctx context.Context, name string, role domain.Role) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type ScenarioService interface {
	Create(ctx context.Context, actor *domain.User, req contract.CreateScenarioRequest) (*domain.Scenario, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Scenario, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Scenario, error)
	Update(ctx context.Context, actor *domain.User, id int64, req contract.UpdateScenarioRequest) (*domain.Scenario, error)
	Publish(ctx context.Context, actor *domain.User, id int64) (*domain.Scenario, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	Clone(ctx context.Context, actor *domain.User, req contract.CloneRequest) (*contract.CloneResponse, error)
	Stats(ctx context.Context, actor *domain.User, id int64) (*contract.ScenarioStatsResponse, error)
}

type PlanningService interface {
	CreateSegmentFunction(ctx context.Context, actor *domain.User, name string) (*domain.SegmentFunction, error)
	ListSegmentFunctions(ctx context.Context) ([]*domain.SegmentFunction, error)

	CreateProject(ctx context.Context, actor *domain.User, p *domain.Project) error
	GetProject(ctx context.Context, actor *domain.User, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, actor *domain.User, scenarioID *int64) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, actor *domain.User, id int64, patch contract.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, actor *domain.User, id int64) error

	CreateResource(ctx context.Context, actor *domain.User, r *domain.Resource) error
	ListResources(ctx context.Context, actor *domain.User, scenarioID *int64) ([]*domain.Resource, error)
	UpdateResource(ctx context.Context, actor *domain.User, id int64, patch contract.ResourcePatch) (*domain.Resource, error)
	DeleteResource(ctx context.Context, actor *domain.User, id int64) error

	CreateMilestone(ctx context.Context, actor *domain.User, m *domain.Milestone) error
	UpdateMilestone(ctx context.Context, actor *domain.User, id int64, patch contract.MilestonePatch) (*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, actor *domain.User, id int64) error

	CreateDependency(ctx context.Context, actor *domain.User, d *domain.Dependency) error
	UpdateDependency(ctx context.Context, actor *domain.User, id int64, patch contract.DependencyPatch) (*domain.Dependency, error)
	DeleteDependency(ctx context.Context, actor *domain.User, id int64) error

	CreateRequirement(ctx context.Context, actor *domain.User, r *domain.Requirement) error
	UpdateRequirement(ctx context.Context, actor *domain.User, id int64, patch contract.RequirementPatch) (*domain.Requirement, error)
	DeleteRequirement(ctx context.Context, actor *domain.User, id int64) error

	CreateCapability(ctx context.Context, actor *domain.User, c *domain.Capability) error
	UpdateCapability(ctx context.Context, actor *domain.User, id int64, patch contract.CapabilityPatch) (*domain.Capability, error)
	DeleteCapability(ctx context.Context, actor *domain.User, id int64) error
}

type AllocationService interface {
	Create(ctx context.Context, actor *domain.User, a *domain.Allocation) (*contract.AllocationResponse, error)
	Update(ctx context.Context, actor *domain.User, id int64, patch contract.AllocationPatch) (*contract.AllocationResponse, error)
	Delete(ctx context.Context, actor *domain.User, id int64) (*contract.OverlapResponse, error)
	// Overlap computes a resource's peak concurrent allocation. A nil
	// scenarioID uses the resource's own scenario; a pointer to zero selects
	// the baseline rows.
	Overlap(ctx context.Context, resourceID int64, scenarioID *int64) (*contract.OverlapResponse, error)
}

type MatchService interface {
	Score(ctx context.Context, capabilityID, requirementID int64) (analytics.MatchBreakdown, error)
	Suggest(ctx context.Context, actor *domain.User, req contract.SuggestRequest) ([]analytics.Suggestion, error)
}

type RiskService interface {
	// SegmentFunction scores a segment's active projects. Scenario id zero
	// selects the baseline rows.
	SegmentFunction(ctx context.Context, segmentFunctionID, scenarioID int64) (*analytics.SegmentRisk, error)
	Project(ctx context.Context, projectID int64) (*analytics.ProjectScore, error)
}
