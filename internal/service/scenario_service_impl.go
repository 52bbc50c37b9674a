package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

// ScenarioOptions tunes the scenario lifecycle and clone engine.
type ScenarioOptions struct {
	// PlannedQuota caps the active planned scenarios one user may own.
	// Zero or less disables the check.
	PlannedQuota int
	// ProjectPrefix seeds project numbers in scenarios without any.
	ProjectPrefix string
	// StrictReferences makes clone fail on references it cannot remap
	// instead of keeping the source id.
	StrictReferences bool
}

func DefaultScenarioOptions() ScenarioOptions {
	return ScenarioOptions{
		PlannedQuota:  2,
		ProjectPrefix: "PRJ",
	}
}

type scenarioService struct {
	scenarios repository.ScenarioRepo
	uow       db.UnitOfWork
	audit     *auditor
	opts      ScenarioOptions
	observer  UseCaseObserver
	now       func() time.Time
}

func NewScenarioService(
	scenarios repository.ScenarioRepo,
	uow db.UnitOfWork,
	audit repository.AuditRepo,
	opts ScenarioOptions,
	observers ...UseCaseObserver,
) ScenarioService {
	if opts.ProjectPrefix == "" {
		opts.ProjectPrefix = DefaultScenarioOptions().ProjectPrefix
	}
	return &scenarioService{
		scenarios: scenarios,
		uow:       uow,
		audit:     newAuditor(audit),
		opts:      opts,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *scenarioService) Create(ctx context.Context, actor *domain.User, req contract.CreateScenarioRequest) (sc *domain.Scenario, err error) {
	fields := map[string]any{"actor_id": actorID(actor)}
	defer observe(ctx, s.observer, "create-scenario", fields)(&err)

	if actor == nil {
		return nil, fmt.Errorf("no acting user: %w", domain.ErrForbidden)
	}
	now := s.now()
	sc = &domain.Scenario{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Status:            domain.ScenarioPlanned,
		CreatedBy:         actor.ID,
		SegmentFunctionID: req.SegmentFunctionID,
		Metadata:          req.Metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err = sc.Validate(); err != nil {
		return nil, err
	}
	if err = checkQuota(ctx, s.scenarios, actor, s.opts.PlannedQuota); err != nil {
		return nil, err
	}
	if err = s.scenarios.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("creating scenario: %w", err)
	}
	fields["scenario_id"] = sc.ID

	s.audit.record(ctx, actor, "scenario.create", &sc.ID, map[string]any{"name": sc.Name})
	return sc, nil
}

// checkQuota is advisory: two concurrent creates may both pass.
func checkQuota(ctx context.Context, scenarios repository.ScenarioRepo, actor *domain.User, quota int) error {
	if quota <= 0 {
		return nil
	}
	n, err := scenarios.CountActivePlannedByOwner(ctx, actor.ID)
	if err != nil {
		return err
	}
	if n >= quota {
		return fmt.Errorf("user %d owns %d planned scenarios (limit %d): %w", actor.ID, n, quota, domain.ErrQuotaExceeded)
	}
	return nil
}

func (s *scenarioService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Scenario, error) {
	sc, err := loadActiveScenario(ctx, s.scenarios, id)
	if err != nil {
		return nil, err
	}
	if !sc.CanView(actor) {
		err := fmt.Errorf("user %d cannot view scenario %d: %w", actorID(actor), id, domain.ErrForbidden)
		return nil, logDenied(err, actor, "scenario", id)
	}
	return sc, nil
}

func (s *scenarioService) List(ctx context.Context, actor *domain.User) ([]*domain.Scenario, error) {
	all, err := s.scenarios.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]*domain.Scenario, 0, len(all))
	for _, sc := range all {
		if sc.CanView(actor) {
			visible = append(visible, sc)
		}
	}
	return visible, nil
}

func (s *scenarioService) Update(ctx context.Context, actor *domain.User, id int64, req contract.UpdateScenarioRequest) (sc *domain.Scenario, err error) {
	defer observe(ctx, s.observer, "update-scenario", map[string]any{"actor_id": actorID(actor), "scenario_id": id})(&err)

	sc, err = loadActiveScenario(ctx, s.scenarios, id)
	if err != nil {
		return nil, err
	}
	if err = sc.CheckModify(actor); err != nil {
		return nil, logDenied(err, actor, "scenario", id)
	}

	sc.Name = strings.TrimSpace(domain.PatchStr(sc.Name, req.Name))
	sc.Description = domain.PatchStr(sc.Description, req.Description)
	if req.SegmentFunctionID != nil {
		sc.SegmentFunctionID = contract.ScenarioScope(*req.SegmentFunctionID)
	}
	if req.Metadata != nil {
		sc.Metadata = req.Metadata
	}
	if err = sc.Validate(); err != nil {
		return nil, err
	}
	sc.UpdatedAt = s.now()
	if err = s.scenarios.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("updating scenario %d: %w", id, err)
	}

	s.audit.record(ctx, actor, "scenario.update", &sc.ID, map[string]any{"name": sc.Name})
	return sc, nil
}

func (s *scenarioService) Publish(ctx context.Context, actor *domain.User, id int64) (sc *domain.Scenario, err error) {
	defer observe(ctx, s.observer, "publish-scenario", map[string]any{"actor_id": actorID(actor), "scenario_id": id})(&err)

	sc, err = loadActiveScenario(ctx, s.scenarios, id)
	if err != nil {
		return nil, err
	}
	if err = sc.Publish(actor, s.now()); err != nil {
		return nil, logDenied(err, actor, "scenario", id)
	}
	if err = s.scenarios.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("publishing scenario %d: %w", id, err)
	}

	s.audit.record(ctx, actor, "scenario.publish", &sc.ID, nil)
	return sc, nil
}

func (s *scenarioService) Delete(ctx context.Context, actor *domain.User, id int64) (err error) {
	defer observe(ctx, s.observer, "delete-scenario", map[string]any{"actor_id": actorID(actor), "scenario_id": id})(&err)

	sc, err := loadActiveScenario(ctx, s.scenarios, id)
	if err != nil {
		return err
	}
	if err = sc.CheckDelete(actor); err != nil {
		return logDenied(err, actor, "scenario", id)
	}
	if err = s.scenarios.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting scenario %d: %w", id, err)
	}

	s.audit.record(ctx, actor, "scenario.delete", &id, nil)
	return nil
}

func (s *scenarioService) Stats(ctx context.Context, actor *domain.User, id int64) (*contract.ScenarioStatsResponse, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	st, err := s.scenarios.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &contract.ScenarioStatsResponse{
		ScenarioID:      id,
		ProjectCount:    st.ProjectCount,
		ResourceCount:   st.ResourceCount,
		MilestoneCount:  st.MilestoneCount,
		DependencyCount: st.DependencyCount,
		AllocationCount: st.AllocationCount,
	}, nil
}
