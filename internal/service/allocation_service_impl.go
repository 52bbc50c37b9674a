package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/analytics"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

type allocationService struct {
	guard        scopeGuard
	uow          db.UnitOfWork
	allocations  repository.AllocationRepo
	resources    repository.ResourceRepo
	projects     repository.ProjectRepo
	milestones   repository.MilestoneRepo
	capabilities repository.CapabilityRepo
	requirements repository.RequirementRepo
	audit        *auditor
	observer     UseCaseObserver
	now          func() time.Time
}

func NewAllocationService(
	scenarios repository.ScenarioRepo,
	uow db.UnitOfWork,
	allocations repository.AllocationRepo,
	resources repository.ResourceRepo,
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	capabilities repository.CapabilityRepo,
	requirements repository.RequirementRepo,
	audit repository.AuditRepo,
	observers ...UseCaseObserver,
) AllocationService {
	return &allocationService{
		guard:        scopeGuard{scenarios: scenarios},
		uow:          uow,
		allocations:  allocations,
		resources:    resources,
		projects:     projects,
		milestones:   milestones,
		capabilities: capabilities,
		requirements: requirements,
		audit:        newAuditor(audit),
		observer:     useCaseObserverOrNoop(observers),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create books a resource onto a project. The allocation inherits the
// project's scenario; the resource may live in any scenario.
func (s *allocationService) Create(ctx context.Context, actor *domain.User, a *domain.Allocation) (resp *contract.AllocationResponse, err error) {
	fields := map[string]any{"actor_id": actorID(actor), "resource_id": a.ResourceID, "project_id": a.ProjectID}
	defer observe(ctx, s.observer, "create-allocation", fields)(&err)

	if err = a.Validate(); err != nil {
		return nil, err
	}
	p, err := s.projects.GetByID(ctx, a.ProjectID)
	if err != nil || !p.IsActive {
		return nil, fmt.Errorf("allocation project %d does not exist: %w", a.ProjectID, domain.ErrInvalid)
	}
	a.ScenarioID = p.ScenarioID
	if err = s.guard.checkModify(ctx, actor, a.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "allocation", 0)
	}
	if err = s.checkLinks(ctx, a); err != nil {
		return nil, err
	}
	if a.MatchScore, err = s.matchScore(ctx, a); err != nil {
		return nil, err
	}

	now := s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	overlap, err := s.writeAndMeasure(ctx, a.ResourceID, a.ScenarioID, func(allocs repository.AllocationRepo) error {
		if err := allocs.Create(ctx, a); err != nil {
			return fmt.Errorf("creating allocation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["allocation_id"] = a.ID
	fields["max_concurrent"] = overlap.MaxConcurrent
	s.audit.record(ctx, actor, "allocation.create", a.ScenarioID, map[string]any{
		"allocation_id":  a.ID,
		"resource_id":    a.ResourceID,
		"project_id":     a.ProjectID,
		"percentage":     a.Percentage,
		"max_concurrent": overlap.MaxConcurrent,
	})
	return &contract.AllocationResponse{Allocation: a, Overlap: *overlap}, nil
}

func (s *allocationService) Update(ctx context.Context, actor *domain.User, id int64, patch contract.AllocationPatch) (resp *contract.AllocationResponse, err error) {
	defer observe(ctx, s.observer, "update-allocation", map[string]any{"actor_id": actorID(actor), "allocation_id": id})(&err)

	a, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.guard.checkModify(ctx, actor, a.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "allocation", id)
	}
	patch.Apply(a)
	if err = a.Validate(); err != nil {
		return nil, err
	}
	if err = s.checkLinks(ctx, a); err != nil {
		return nil, err
	}
	if a.MatchScore, err = s.matchScore(ctx, a); err != nil {
		return nil, err
	}
	overlap, err := s.writeAndMeasure(ctx, a.ResourceID, a.ScenarioID, func(allocs repository.AllocationRepo) error {
		if err := allocs.Update(ctx, a); err != nil {
			return fmt.Errorf("updating allocation %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "allocation.update", a.ScenarioID, map[string]any{
		"allocation_id":  id,
		"percentage":     a.Percentage,
		"max_concurrent": overlap.MaxConcurrent,
	})
	return &contract.AllocationResponse{Allocation: a, Overlap: *overlap}, nil
}

func (s *allocationService) Delete(ctx context.Context, actor *domain.User, id int64) (resp *contract.OverlapResponse, err error) {
	defer observe(ctx, s.observer, "delete-allocation", map[string]any{"actor_id": actorID(actor), "allocation_id": id})(&err)

	a, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.guard.checkModify(ctx, actor, a.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "allocation", id)
	}
	resp, err = s.writeAndMeasure(ctx, a.ResourceID, a.ScenarioID, func(allocs repository.AllocationRepo) error {
		return allocs.SoftDelete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "allocation.delete", a.ScenarioID, map[string]any{
		"allocation_id":  id,
		"max_concurrent": resp.MaxConcurrent,
	})
	return resp, nil
}

func (s *allocationService) Overlap(ctx context.Context, resourceID int64, scenarioID *int64) (*contract.OverlapResponse, error) {
	r, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, fmt.Errorf("resource %d: %w", resourceID, domain.ErrNotFound)
	}
	scope := r.ScenarioID
	if scenarioID != nil {
		scope = contract.ScenarioScope(*scenarioID)
	}
	return measureOverlap(ctx, s.allocations, resourceID, scope)
}

// writeAndMeasure applies write and recomputes the resource's overlap in one
// transaction, so a failed recompute leaves nothing behind.
func (s *allocationService) writeAndMeasure(ctx context.Context, resourceID int64, scope *int64, write func(repository.AllocationRepo) error) (*contract.OverlapResponse, error) {
	var out *contract.OverlapResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		allocs := repository.NewSQLiteAllocationRepo(tx)
		if err := write(allocs); err != nil {
			return err
		}
		var err error
		out, err = measureOverlap(ctx, allocs, resourceID, scope)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func measureOverlap(ctx context.Context, repo repository.AllocationRepo, resourceID int64, scope *int64) (*contract.OverlapResponse, error) {
	allocs, err := repo.ListByResource(ctx, resourceID, scope)
	if err != nil {
		return nil, fmt.Errorf("loading allocations for resource %d: %w", resourceID, err)
	}
	peak := analytics.MaxConcurrentAllocation(allocs)
	return &contract.OverlapResponse{
		ResourceID:    resourceID,
		ScenarioID:    scope,
		MaxConcurrent: peak,
		OverAllocated: analytics.IsOverAllocated(peak),
	}, nil
}

func (s *allocationService) active(ctx context.Context, id int64) (*domain.Allocation, error) {
	a, err := s.allocations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, fmt.Errorf("allocation %d: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

// checkLinks verifies the resource and the optional milestone and
// requirement belong where the allocation says they do.
func (s *allocationService) checkLinks(ctx context.Context, a *domain.Allocation) error {
	r, err := s.resources.GetByID(ctx, a.ResourceID)
	if err != nil || !r.IsActive {
		return fmt.Errorf("allocation resource %d does not exist: %w", a.ResourceID, domain.ErrInvalid)
	}
	if a.MilestoneID != nil {
		m, err := s.milestones.GetByID(ctx, *a.MilestoneID)
		if err != nil || !m.IsActive || m.ProjectID != a.ProjectID {
			return fmt.Errorf("milestone %d is not part of project %d: %w", *a.MilestoneID, a.ProjectID, domain.ErrInvalid)
		}
	}
	if a.RequirementID != nil {
		req, err := s.requirements.GetByID(ctx, *a.RequirementID)
		if err != nil || !req.IsActive || req.ProjectID != a.ProjectID {
			return fmt.Errorf("requirement %d is not part of project %d: %w", *a.RequirementID, a.ProjectID, domain.ErrInvalid)
		}
	}
	if a.CapabilityID != nil {
		c, err := s.capabilities.GetByID(ctx, *a.CapabilityID)
		if err != nil || !c.IsActive {
			return fmt.Errorf("capability %d does not exist: %w", *a.CapabilityID, domain.ErrInvalid)
		}
	}
	return nil
}

// matchScore is stored only when both the capability and requirement links
// are set; otherwise the stored score is cleared.
func (s *allocationService) matchScore(ctx context.Context, a *domain.Allocation) (*int, error) {
	if a.CapabilityID == nil || a.RequirementID == nil {
		return nil, nil
	}
	c, err := s.capabilities.GetByID(ctx, *a.CapabilityID)
	if err != nil {
		return nil, err
	}
	req, err := s.requirements.GetByID(ctx, *a.RequirementID)
	if err != nil {
		return nil, err
	}
	score := analytics.MatchScore(c, req)
	return &score, nil
}
