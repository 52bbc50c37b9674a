package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/analytics"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

type matchService struct {
	guard        scopeGuard
	projects     repository.ProjectRepo
	capabilities repository.CapabilityRepo
	requirements repository.RequirementRepo
}

func NewMatchService(
	scenarios repository.ScenarioRepo,
	projects repository.ProjectRepo,
	capabilities repository.CapabilityRepo,
	requirements repository.RequirementRepo,
) MatchService {
	return &matchService{
		guard:        scopeGuard{scenarios: scenarios},
		projects:     projects,
		capabilities: capabilities,
		requirements: requirements,
	}
}

func (s *matchService) Score(ctx context.Context, capabilityID, requirementID int64) (analytics.MatchBreakdown, error) {
	c, err := s.capabilities.GetByID(ctx, capabilityID)
	if err != nil {
		return analytics.MatchBreakdown{}, err
	}
	r, err := s.requirements.GetByID(ctx, requirementID)
	if err != nil {
		return analytics.MatchBreakdown{}, err
	}
	return analytics.ScoreMatch(c, r), nil
}

// Suggest ranks every capability in the project's scenario against the
// project's requirements.
func (s *matchService) Suggest(ctx context.Context, actor *domain.User, req contract.SuggestRequest) ([]analytics.Suggestion, error) {
	p, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, fmt.Errorf("project %d: %w", req.ProjectID, domain.ErrNotFound)
	}
	if err := s.guard.checkView(ctx, actor, p.ScenarioID); err != nil {
		return nil, logDenied(err, actor, "project", p.ID)
	}

	reqs, err := s.requirements.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	caps, err := s.capabilities.ListByScenario(ctx, p.ScenarioID)
	if err != nil {
		return nil, err
	}
	out := analytics.RankSuggestions(caps, reqs, req.MinScore)
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}
