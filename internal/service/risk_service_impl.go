package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/analytics"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

type riskService struct {
	projects     repository.ProjectRepo
	allocations  repository.AllocationRepo
	requirements repository.RequirementRepo
	dependencies repository.DependencyRepo
	observer     UseCaseObserver
	now          func() time.Time
}

func NewRiskService(
	projects repository.ProjectRepo,
	allocations repository.AllocationRepo,
	requirements repository.RequirementRepo,
	dependencies repository.DependencyRepo,
	observers ...UseCaseObserver,
) RiskService {
	return &riskService{
		projects:     projects,
		allocations:  allocations,
		requirements: requirements,
		dependencies: dependencies,
		observer:     useCaseObserverOrNoop(observers),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *riskService) SegmentFunction(ctx context.Context, segmentFunctionID, scenarioID int64) (out *analytics.SegmentRisk, err error) {
	fields := map[string]any{"segment_function_id": segmentFunctionID, "scenario_id": scenarioID}
	defer observe(ctx, s.observer, "segment-risk", fields)(&err)

	// An unknown segment function has no projects and scores zero.
	scope := contract.ScenarioScope(scenarioID)
	projects, err := s.projects.ListBySegmentFunction(ctx, segmentFunctionID, scope)
	if err != nil {
		return nil, err
	}
	signals, err := s.signals(ctx, scope, projects)
	if err != nil {
		return nil, err
	}

	risk := analytics.SegmentFunctionRisk(segmentFunctionID, scope, signals, s.now())
	fields["project_count"] = risk.ProjectCount
	fields["total_score"] = risk.TotalScore
	return &risk, nil
}

func (s *riskService) Project(ctx context.Context, projectID int64) (*analytics.ProjectScore, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, fmt.Errorf("project %d: %w", projectID, domain.ErrNotFound)
	}
	signals, err := s.signals(ctx, p.ScenarioID, []*domain.Project{p})
	if err != nil {
		return nil, err
	}
	score := analytics.ScoreProject(signals[0], s.now())
	return &score, nil
}

// signals joins each project with its allocation, requirement and incoming
// dependency totals. The scope-wide lists are loaded once.
func (s *riskService) signals(ctx context.Context, scope *int64, projects []*domain.Project) ([]analytics.ProjectSignals, error) {
	if len(projects) == 0 {
		return nil, nil
	}
	allocs, err := s.allocations.ListByScenario(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}
	reqs, err := s.requirements.ListByScenario(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("loading requirements: %w", err)
	}
	incoming, err := s.dependencies.IncomingCountsByProject(ctx, scope)
	if err != nil {
		return nil, err
	}

	pctByProject := make(map[int64]int, len(projects))
	for _, a := range allocs {
		pctByProject[a.ProjectID] += a.Percentage
	}
	requiredByProject := make(map[int64]int, len(projects))
	for _, r := range reqs {
		requiredByProject[r.ProjectID] += r.RequiredCount
	}

	out := make([]analytics.ProjectSignals, 0, len(projects))
	for _, p := range projects {
		out = append(out, analytics.ProjectSignals{
			Project:              p,
			AllocatedFTE:         float64(pctByProject[p.ID]) / 100,
			RequiredCount:        requiredByProject[p.ID],
			IncomingDependencies: incoming[p.ID],
		})
	}
	return out, nil
}
