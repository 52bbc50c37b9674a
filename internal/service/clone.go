package service

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

// Kinds that only exist as clone map keys. Dependency endpoints use
// domain.KindProject and domain.KindMilestone.
const (
	kindRequirement domain.EntityKind = "requirement"
	kindResource    domain.EntityKind = "resource"
	kindCapability  domain.EntityKind = "capability"
)

// idMap translates source row ids to destination row ids, keyed by kind so
// a project and a milestone sharing a numeric id never collide.
type idMap map[domain.EntityRef]int64

func (m idMap) put(kind domain.EntityKind, oldID, newID int64) {
	m[domain.EntityRef{Kind: kind, ID: oldID}] = newID
}

func (m idMap) get(kind domain.EntityKind, oldID int64) (int64, bool) {
	id, ok := m[domain.EntityRef{Kind: kind, ID: oldID}]
	return id, ok
}

// Clone copies the active graph of a scenario into a new planned scenario
// owned by actor. Everything runs in one transaction.
func (s *scenarioService) Clone(ctx context.Context, actor *domain.User, req contract.CloneRequest) (resp *contract.CloneResponse, err error) {
	fields := map[string]any{
		"actor_id":  actorID(actor),
		"source_id": req.SourceID,
		"strict":    s.opts.StrictReferences,
	}
	defer observe(ctx, s.observer, "clone-scenario", fields)(&err)

	if actor == nil {
		return nil, fmt.Errorf("no acting user: %w", domain.ErrForbidden)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txScenarios := repository.NewSQLiteScenarioRepo(tx)

		if err := checkQuota(ctx, txScenarios, actor, s.opts.PlannedQuota); err != nil {
			return err
		}
		src, err := loadActiveScenario(ctx, txScenarios, req.SourceID)
		if err != nil {
			return err
		}
		if !src.CanView(actor) {
			err := fmt.Errorf("user %d cannot view scenario %d: %w", actor.ID, src.ID, domain.ErrForbidden)
			return logDenied(err, actor, "scenario", src.ID)
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = src.Name + " (copy)"
		}
		now := s.now()
		parent := src.ID
		dst := &domain.Scenario{
			Name:              name,
			Description:       src.Description,
			Status:            domain.ScenarioPlanned,
			CreatedBy:         actor.ID,
			ParentScenarioID:  &parent,
			SegmentFunctionID: src.SegmentFunctionID,
			Metadata:          maps.Clone(src.Metadata),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := txScenarios.Create(ctx, dst); err != nil {
			return fmt.Errorf("creating destination scenario: %w", err)
		}

		c := newGraphCloner(tx, src.ID, dst.ID, s.opts, now)
		if err := c.run(ctx); err != nil {
			return err
		}
		resp = &contract.CloneResponse{Scenario: dst, Copied: c.counts}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cloning scenario %d: %w", req.SourceID, err)
	}

	fields["scenario_id"] = resp.Scenario.ID
	fields["projects"] = resp.Copied.Projects
	s.audit.record(ctx, actor, "scenario.clone", &resp.Scenario.ID, map[string]any{
		"source_id": req.SourceID,
		"copied":    resp.Copied,
	})
	return resp, nil
}

// graphCloner copies one scenario's rows into another through tx-scoped
// repositories. Later kinds read the id map built by earlier ones, so run
// order matters.
type graphCloner struct {
	src, dst int64
	strict   bool
	prefix   string
	now      time.Time

	ids    idMap
	counts contract.CloneCounts

	projects     *repository.SQLiteProjectRepo
	sequences    *repository.SQLiteProjectSequenceRepo
	requirements *repository.SQLiteRequirementRepo
	resources    *repository.SQLiteResourceRepo
	capabilities *repository.SQLiteCapabilityRepo
	milestones   *repository.SQLiteMilestoneRepo
	dependencies *repository.SQLiteDependencyRepo
	allocations  *repository.SQLiteAllocationRepo
}

func newGraphCloner(tx db.DBTX, src, dst int64, opts ScenarioOptions, now time.Time) *graphCloner {
	return &graphCloner{
		src:          src,
		dst:          dst,
		strict:       opts.StrictReferences,
		prefix:       opts.ProjectPrefix,
		now:          now,
		ids:          make(idMap),
		projects:     repository.NewSQLiteProjectRepo(tx),
		sequences:    repository.NewSQLiteProjectSequenceRepo(tx),
		requirements: repository.NewSQLiteRequirementRepo(tx),
		resources:    repository.NewSQLiteResourceRepo(tx),
		capabilities: repository.NewSQLiteCapabilityRepo(tx),
		milestones:   repository.NewSQLiteMilestoneRepo(tx),
		dependencies: repository.NewSQLiteDependencyRepo(tx),
		allocations:  repository.NewSQLiteAllocationRepo(tx),
	}
}

func (c *graphCloner) run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"projects", c.cloneProjects},
		{"requirements", c.cloneRequirements},
		{"resources", c.cloneResources},
		{"capabilities", c.cloneCapabilities},
		{"milestones", c.cloneMilestones},
		{"dependencies", c.cloneDependencies},
		{"allocations", c.cloneAllocations},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("copying %s: %w", step.name, err)
		}
	}
	return nil
}

// remap resolves a required reference. Lenient mode keeps the source id
// when the target was not copied; strict mode fails.
func (c *graphCloner) remap(kind domain.EntityKind, oldID int64, owner string) (int64, error) {
	if id, ok := c.ids.get(kind, oldID); ok {
		return id, nil
	}
	if c.strict {
		return 0, fmt.Errorf("%s references %s %d outside the copied graph: %w", owner, kind, oldID, domain.ErrUnmappedReference)
	}
	return oldID, nil
}

func (c *graphCloner) remapOptional(kind domain.EntityKind, oldID *int64, owner string) (*int64, error) {
	if oldID == nil {
		return nil, nil
	}
	id, err := c.remap(kind, *oldID, owner)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *graphCloner) scope() *int64 {
	dst := c.dst
	return &dst
}

func (c *graphCloner) cloneProjects(ctx context.Context) error {
	rows, err := c.projects.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, p := range rows {
		cp := *p
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		// Numbers are reissued from the destination counter; the source
		// numbering is not carried over.
		if cp.ProjectNumber, err = c.sequences.NextProjectNumber(ctx, cp.ScenarioID, c.prefix); err != nil {
			return err
		}
		if err := c.projects.Create(ctx, &cp); err != nil {
			return fmt.Errorf("project %d: %w", p.ID, err)
		}
		c.ids.put(domain.KindProject, p.ID, cp.ID)
		c.counts.Projects++
	}
	return nil
}

func (c *graphCloner) cloneRequirements(ctx context.Context) error {
	rows, err := c.requirements.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, r := range rows {
		cp := *r
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		owner := fmt.Sprintf("requirement %d", r.ID)
		if cp.ProjectID, err = c.remap(domain.KindProject, r.ProjectID, owner); err != nil {
			return err
		}
		if err := c.requirements.Create(ctx, &cp); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
		c.ids.put(kindRequirement, r.ID, cp.ID)
		c.counts.Requirements++
	}
	return nil
}

func (c *graphCloner) cloneResources(ctx context.Context) error {
	rows, err := c.resources.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, r := range rows {
		cp := *r
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		if err := c.resources.Create(ctx, &cp); err != nil {
			return fmt.Errorf("resource %d: %w", r.ID, err)
		}
		c.ids.put(kindResource, r.ID, cp.ID)
		c.counts.Resources++
	}
	return nil
}

func (c *graphCloner) cloneCapabilities(ctx context.Context) error {
	rows, err := c.capabilities.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, capRow := range rows {
		cp := *capRow
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		owner := fmt.Sprintf("capability %d", capRow.ID)
		if cp.ResourceID, err = c.remap(kindResource, capRow.ResourceID, owner); err != nil {
			return err
		}
		if err := c.capabilities.Create(ctx, &cp); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
		c.ids.put(kindCapability, capRow.ID, cp.ID)
		c.counts.Capabilities++
	}
	return nil
}

func (c *graphCloner) cloneMilestones(ctx context.Context) error {
	rows, err := c.milestones.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, m := range rows {
		cp := *m
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		owner := fmt.Sprintf("milestone %d", m.ID)
		if cp.ProjectID, err = c.remap(domain.KindProject, m.ProjectID, owner); err != nil {
			return err
		}
		if err := c.milestones.Create(ctx, &cp); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
		c.ids.put(domain.KindMilestone, m.ID, cp.ID)
		c.counts.Milestones++
	}
	return nil
}

func (c *graphCloner) cloneDependencies(ctx context.Context) error {
	rows, err := c.dependencies.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, d := range rows {
		cp := *d
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		owner := fmt.Sprintf("dependency %d", d.ID)
		// Each side resolves through the map of its declared kind.
		if cp.Predecessor.ID, err = c.remap(d.Predecessor.Kind, d.Predecessor.ID, owner); err != nil {
			return err
		}
		if cp.Successor.ID, err = c.remap(d.Successor.Kind, d.Successor.ID, owner); err != nil {
			return err
		}
		if err := c.dependencies.Create(ctx, &cp); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
		c.counts.Dependencies++
	}
	return nil
}

// cloneAllocations keeps resource ids and capability links pointing at the
// source rows.
func (c *graphCloner) cloneAllocations(ctx context.Context) error {
	rows, err := c.allocations.ListByScenario(ctx, &c.src)
	if err != nil {
		return err
	}
	for _, a := range rows {
		cp := *a
		cp.ID = 0
		cp.ScenarioID = c.scope()
		cp.CreatedAt, cp.UpdatedAt = c.now, c.now
		owner := fmt.Sprintf("allocation %d", a.ID)
		if cp.ProjectID, err = c.remap(domain.KindProject, a.ProjectID, owner); err != nil {
			return err
		}
		if cp.MilestoneID, err = c.remapOptional(domain.KindMilestone, a.MilestoneID, owner); err != nil {
			return err
		}
		if cp.RequirementID, err = c.remapOptional(kindRequirement, a.RequirementID, owner); err != nil {
			return err
		}
		if err := c.allocations.Create(ctx, &cp); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
		c.counts.Allocations++
	}
	return nil
}
