package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

type planningService struct {
	guard        scopeGuard
	segments     repository.SegmentFunctionRepo
	projects     repository.ProjectRepo
	sequences    repository.ProjectNumberSequenceRepo
	requirements repository.RequirementRepo
	resources    repository.ResourceRepo
	capabilities repository.CapabilityRepo
	milestones   repository.MilestoneRepo
	dependencies repository.DependencyRepo
	audit        *auditor
	prefix       string
	observer     UseCaseObserver
	now          func() time.Time
}

func NewPlanningService(
	scenarios repository.ScenarioRepo,
	segments repository.SegmentFunctionRepo,
	projects repository.ProjectRepo,
	sequences repository.ProjectNumberSequenceRepo,
	requirements repository.RequirementRepo,
	resources repository.ResourceRepo,
	capabilities repository.CapabilityRepo,
	milestones repository.MilestoneRepo,
	dependencies repository.DependencyRepo,
	audit repository.AuditRepo,
	projectPrefix string,
	observers ...UseCaseObserver,
) PlanningService {
	if projectPrefix == "" {
		projectPrefix = DefaultScenarioOptions().ProjectPrefix
	}
	return &planningService{
		guard:        scopeGuard{scenarios: scenarios},
		segments:     segments,
		projects:     projects,
		sequences:    sequences,
		requirements: requirements,
		resources:    resources,
		capabilities: capabilities,
		milestones:   milestones,
		dependencies: dependencies,
		audit:        newAuditor(audit),
		prefix:       projectPrefix,
		observer:     useCaseObserverOrNoop(observers),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// --- segment functions ---

func (s *planningService) CreateSegmentFunction(ctx context.Context, actor *domain.User, name string) (*domain.SegmentFunction, error) {
	if !actor.IsElevated() {
		err := fmt.Errorf("user %d cannot register segment functions: %w", actorID(actor), domain.ErrForbidden)
		return nil, logDenied(err, actor, "segment_function", 0)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("segment function name is required: %w", domain.ErrInvalid)
	}
	sf := &domain.SegmentFunction{Name: name, IsActive: true, CreatedAt: s.now()}
	if err := s.segments.Create(ctx, sf); err != nil {
		return nil, fmt.Errorf("creating segment function %q: %w", name, err)
	}
	return sf, nil
}

func (s *planningService) ListSegmentFunctions(ctx context.Context) ([]*domain.SegmentFunction, error) {
	return s.segments.List(ctx)
}

func (s *planningService) checkSegment(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	sf, err := s.segments.GetByID(ctx, *id)
	if err != nil || !sf.IsActive {
		return fmt.Errorf("segment function %d does not exist: %w", *id, domain.ErrInvalid)
	}
	return nil
}

// --- projects ---

func (s *planningService) CreateProject(ctx context.Context, actor *domain.User, p *domain.Project) (err error) {
	fields := map[string]any{"actor_id": actorID(actor), "scenario_id": scopeField(p.ScenarioID)}
	defer observe(ctx, s.observer, "create-project", fields)(&err)

	if err = p.Validate(); err != nil {
		return err
	}
	if err = s.guard.checkModify(ctx, actor, p.ScenarioID); err != nil {
		return logDenied(err, actor, "project", 0)
	}
	if err = s.checkSegment(ctx, p.SegmentFunctionID); err != nil {
		return err
	}
	p.ProjectNumber = strings.TrimSpace(p.ProjectNumber)
	if p.ProjectNumber == "" {
		if p.ProjectNumber, err = s.sequences.NextProjectNumber(ctx, p.ScenarioID, s.prefix); err != nil {
			return err
		}
	}
	if p.HealthStatus == "" {
		p.HealthStatus = domain.HealthGreen
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err = s.projects.Create(ctx, p); err != nil {
		return fmt.Errorf("creating project %q: %w", p.Name, err)
	}
	fields["project_id"] = p.ID

	s.audit.record(ctx, actor, "project.create", p.ScenarioID, map[string]any{
		"project_id": p.ID,
		"number":     p.ProjectNumber,
	})
	return nil
}

func (s *planningService) activeProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *planningService) GetProject(ctx context.Context, actor *domain.User, id int64) (*domain.Project, error) {
	p, err := s.activeProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkView(ctx, actor, p.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "project", id)
	}
	return p, nil
}

func (s *planningService) ListProjects(ctx context.Context, actor *domain.User, scenarioID *int64) ([]*domain.Project, error) {
	if err := s.guard.checkView(ctx, actor, scenarioID); err != nil {
		return nil, logDenied(err, actor, "scenario", derefID(scenarioID))
	}
	return s.projects.ListByScenario(ctx, scenarioID)
}

func (s *planningService) UpdateProject(ctx context.Context, actor *domain.User, id int64, patch contract.ProjectPatch) (p *domain.Project, err error) {
	defer observe(ctx, s.observer, "update-project", map[string]any{"actor_id": actorID(actor), "project_id": id})(&err)

	if p, err = s.activeProject(ctx, id); err != nil {
		return nil, err
	}
	if err = s.guard.checkModify(ctx, actor, p.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "project", id)
	}
	patch.Apply(p)
	if err = p.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.ProjectNumber) == "" {
		return nil, fmt.Errorf("project number cannot be blank: %w", domain.ErrInvalid)
	}
	if err = s.checkSegment(ctx, p.SegmentFunctionID); err != nil {
		return nil, err
	}
	if err = s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating project %d: %w", id, err)
	}

	s.audit.record(ctx, actor, "project.update", p.ScenarioID, map[string]any{"project_id": id})
	return p, nil
}

func (s *planningService) DeleteProject(ctx context.Context, actor *domain.User, id int64) (err error) {
	defer observe(ctx, s.observer, "delete-project", map[string]any{"actor_id": actorID(actor), "project_id": id})(&err)

	p, err := s.activeProject(ctx, id)
	if err != nil {
		return err
	}
	if err = s.guard.checkModify(ctx, actor, p.ScenarioID); err != nil {
		return logDenied(err, actor, "project", id)
	}
	if err = s.projects.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "project.delete", p.ScenarioID, map[string]any{"project_id": id})
	return nil
}

// --- resources ---

func (s *planningService) CreateResource(ctx context.Context, actor *domain.User, r *domain.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, r.ScenarioID); err != nil {
		return logDenied(err, actor, "resource", 0)
	}
	now := s.now()
	r.CreatedAt, r.UpdatedAt = now, now
	if err := s.resources.Create(ctx, r); err != nil {
		return fmt.Errorf("creating resource %q: %w", r.Name, err)
	}
	s.audit.record(ctx, actor, "resource.create", r.ScenarioID, map[string]any{"resource_id": r.ID})
	return nil
}

func (s *planningService) activeResource(ctx context.Context, id int64) (*domain.Resource, error) {
	r, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, fmt.Errorf("resource %d: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

func (s *planningService) ListResources(ctx context.Context, actor *domain.User, scenarioID *int64) ([]*domain.Resource, error) {
	if err := s.guard.checkView(ctx, actor, scenarioID); err != nil {
		return nil, logDenied(err, actor, "scenario", derefID(scenarioID))
	}
	return s.resources.ListByScenario(ctx, scenarioID)
}

func (s *planningService) UpdateResource(ctx context.Context, actor *domain.User, id int64, patch contract.ResourcePatch) (*domain.Resource, error) {
	r, err := s.activeResource(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkModify(ctx, actor, r.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "resource", id)
	}
	patch.Apply(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.resources.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("updating resource %d: %w", id, err)
	}
	s.audit.record(ctx, actor, "resource.update", r.ScenarioID, map[string]any{"resource_id": id})
	return r, nil
}

func (s *planningService) DeleteResource(ctx context.Context, actor *domain.User, id int64) error {
	r, err := s.activeResource(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, r.ScenarioID); err != nil {
		return logDenied(err, actor, "resource", id)
	}
	if err := s.resources.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "resource.delete", r.ScenarioID, map[string]any{"resource_id": id})
	return nil
}

// --- milestones ---

// CreateMilestone scopes the milestone to its project's scenario.
func (s *planningService) CreateMilestone(ctx context.Context, actor *domain.User, m *domain.Milestone) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p, err := s.activeProject(ctx, m.ProjectID)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, p.ScenarioID); err != nil {
		return logDenied(err, actor, "milestone", 0)
	}
	m.ScenarioID = p.ScenarioID
	now := s.now()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := s.milestones.Create(ctx, m); err != nil {
		return fmt.Errorf("creating milestone %q: %w", m.Name, err)
	}
	s.audit.record(ctx, actor, "milestone.create", m.ScenarioID, map[string]any{"milestone_id": m.ID, "project_id": p.ID})
	return nil
}

func (s *planningService) activeMilestone(ctx context.Context, id int64) (*domain.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, fmt.Errorf("milestone %d: %w", id, domain.ErrNotFound)
	}
	return m, nil
}

func (s *planningService) UpdateMilestone(ctx context.Context, actor *domain.User, id int64, patch contract.MilestonePatch) (*domain.Milestone, error) {
	m, err := s.activeMilestone(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkModify(ctx, actor, m.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "milestone", id)
	}
	patch.Apply(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.milestones.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating milestone %d: %w", id, err)
	}
	s.audit.record(ctx, actor, "milestone.update", m.ScenarioID, map[string]any{"milestone_id": id})
	return m, nil
}

func (s *planningService) DeleteMilestone(ctx context.Context, actor *domain.User, id int64) error {
	m, err := s.activeMilestone(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, m.ScenarioID); err != nil {
		return logDenied(err, actor, "milestone", id)
	}
	if err := s.milestones.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "milestone.delete", m.ScenarioID, map[string]any{"milestone_id": id})
	return nil
}

// --- dependencies ---

func (s *planningService) CreateDependency(ctx context.Context, actor *domain.User, d *domain.Dependency) (err error) {
	fields := map[string]any{"actor_id": actorID(actor), "scenario_id": scopeField(d.ScenarioID)}
	defer observe(ctx, s.observer, "create-dependency", fields)(&err)

	d.DefaultAnchors()
	if err = d.Validate(); err != nil {
		return err
	}
	if err = s.guard.checkModify(ctx, actor, d.ScenarioID); err != nil {
		return logDenied(err, actor, "dependency", 0)
	}
	for _, ep := range []domain.Endpoint{d.Predecessor, d.Successor} {
		if err = s.resolveEndpoint(ctx, ep, d.ScenarioID); err != nil {
			return err
		}
	}
	now := s.now()
	d.CreatedAt, d.UpdatedAt = now, now
	if err = s.dependencies.Create(ctx, d); err != nil {
		return fmt.Errorf("creating dependency %s -> %s: %w", d.Predecessor, d.Successor, err)
	}
	fields["dependency_id"] = d.ID

	s.audit.record(ctx, actor, "dependency.create", d.ScenarioID, map[string]any{
		"dependency_id": d.ID,
		"predecessor":   d.Predecessor.String(),
		"successor":     d.Successor.String(),
	})
	return nil
}

// resolveEndpoint requires an active row of the declared kind in the
// dependency's scenario.
func (s *planningService) resolveEndpoint(ctx context.Context, ep domain.Endpoint, scenarioID *int64) error {
	var (
		scope  *int64
		active bool
		err    error
	)
	switch ep.Kind {
	case domain.KindProject:
		var p *domain.Project
		if p, err = s.projects.GetByID(ctx, ep.ID); err == nil {
			scope, active = p.ScenarioID, p.IsActive
		}
	case domain.KindMilestone:
		var m *domain.Milestone
		if m, err = s.milestones.GetByID(ctx, ep.ID); err == nil {
			scope, active = m.ScenarioID, m.IsActive
		}
	default:
		return fmt.Errorf("unknown endpoint kind %q: %w", ep.Kind, domain.ErrInvalid)
	}
	if err != nil || !active {
		return fmt.Errorf("endpoint %s does not resolve to an active %s: %w", ep, ep.Kind, domain.ErrInvalid)
	}
	if !sameScope(scope, scenarioID) {
		return fmt.Errorf("endpoint %s belongs to another scenario: %w", ep, domain.ErrInvalid)
	}
	return nil
}

func (s *planningService) activeDependency(ctx context.Context, id int64) (*domain.Dependency, error) {
	d, err := s.dependencies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, fmt.Errorf("dependency %d: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

func (s *planningService) UpdateDependency(ctx context.Context, actor *domain.User, id int64, patch contract.DependencyPatch) (*domain.Dependency, error) {
	d, err := s.activeDependency(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkModify(ctx, actor, d.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "dependency", id)
	}
	patch.Apply(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.dependencies.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("updating dependency %d: %w", id, err)
	}
	s.audit.record(ctx, actor, "dependency.update", d.ScenarioID, map[string]any{"dependency_id": id})
	return d, nil
}

func (s *planningService) DeleteDependency(ctx context.Context, actor *domain.User, id int64) error {
	d, err := s.activeDependency(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, d.ScenarioID); err != nil {
		return logDenied(err, actor, "dependency", id)
	}
	if err := s.dependencies.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "dependency.delete", d.ScenarioID, map[string]any{"dependency_id": id})
	return nil
}

// --- requirements ---

// CreateRequirement scopes the requirement to its project's scenario.
func (s *planningService) CreateRequirement(ctx context.Context, actor *domain.User, r *domain.Requirement) error {
	if r.RequiredCount == 0 {
		r.RequiredCount = 1
	}
	if err := r.Validate(); err != nil {
		return err
	}
	p, err := s.activeProject(ctx, r.ProjectID)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, p.ScenarioID); err != nil {
		return logDenied(err, actor, "requirement", 0)
	}
	r.ScenarioID = p.ScenarioID
	now := s.now()
	r.CreatedAt, r.UpdatedAt = now, now
	if err := s.requirements.Create(ctx, r); err != nil {
		return fmt.Errorf("creating requirement for project %d: %w", p.ID, err)
	}
	s.audit.record(ctx, actor, "requirement.create", r.ScenarioID, map[string]any{"requirement_id": r.ID, "project_id": p.ID})
	return nil
}

func (s *planningService) activeRequirement(ctx context.Context, id int64) (*domain.Requirement, error) {
	r, err := s.requirements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, fmt.Errorf("requirement %d: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

func (s *planningService) UpdateRequirement(ctx context.Context, actor *domain.User, id int64, patch contract.RequirementPatch) (*domain.Requirement, error) {
	r, err := s.activeRequirement(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkModify(ctx, actor, r.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "requirement", id)
	}
	patch.Apply(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.requirements.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("updating requirement %d: %w", id, err)
	}
	s.audit.record(ctx, actor, "requirement.update", r.ScenarioID, map[string]any{"requirement_id": id})
	return r, nil
}

func (s *planningService) DeleteRequirement(ctx context.Context, actor *domain.User, id int64) error {
	r, err := s.activeRequirement(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, r.ScenarioID); err != nil {
		return logDenied(err, actor, "requirement", id)
	}
	if err := s.requirements.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "requirement.delete", r.ScenarioID, map[string]any{"requirement_id": id})
	return nil
}

// --- capabilities ---

// CreateCapability scopes the capability to its resource's scenario.
func (s *planningService) CreateCapability(ctx context.Context, actor *domain.User, c *domain.Capability) error {
	if err := c.Validate(); err != nil {
		return err
	}
	r, err := s.activeResource(ctx, c.ResourceID)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, r.ScenarioID); err != nil {
		return logDenied(err, actor, "capability", 0)
	}
	c.ScenarioID = r.ScenarioID
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.capabilities.Create(ctx, c); err != nil {
		return fmt.Errorf("creating capability for resource %d: %w", r.ID, err)
	}
	s.audit.record(ctx, actor, "capability.create", c.ScenarioID, map[string]any{"capability_id": c.ID, "resource_id": r.ID})
	return nil
}

func (s *planningService) activeCapability(ctx context.Context, id int64) (*domain.Capability, error) {
	c, err := s.capabilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, fmt.Errorf("capability %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (s *planningService) UpdateCapability(ctx context.Context, actor *domain.User, id int64, patch contract.CapabilityPatch) (*domain.Capability, error) {
	c, err := s.activeCapability(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkModify(ctx, actor, c.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "capability", id)
	}
	patch.Apply(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.capabilities.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating capability %d: %w", id, err)
	}
	s.audit.record(ctx, actor, "capability.update", c.ScenarioID, map[string]any{"capability_id": id})
	return c, nil
}

func (s *planningService) DeleteCapability(ctx context.Context, actor *domain.User, id int64) error {
	c, err := s.activeCapability(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.checkModify(ctx, actor, c.ScenarioID); err != nil {
		return logDenied(err, actor, "capability", id)
	}
	if err := s.capabilities.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "capability.delete", c.ScenarioID, map[string]any{"capability_id": id})
	return nil
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
