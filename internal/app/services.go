// Package app assembles the repositories and services behind both the CLI
// and the HTTP API.
package app

import (
	"database/sql"

	"github.com/alexanderramin/horizon/internal/config"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/sirupsen/logrus"
)

// Services holds every use case the outer surfaces call.
type Services struct {
	Users       service.UserService
	Scenarios   service.ScenarioService
	Planning    service.PlanningService
	Allocations service.AllocationService
	Match       service.MatchService
	Risk        service.RiskService
}

// ScenarioOptions maps the scenario and clone config sections onto the
// service options.
func ScenarioOptions(cfg config.Config) service.ScenarioOptions {
	return service.ScenarioOptions{
		PlannedQuota:     cfg.Scenario.PlannedQuota,
		ProjectPrefix:    cfg.Scenario.ProjectPrefix,
		StrictReferences: cfg.Clone.StrictReferences,
	}
}

// NewServices wires SQLite repositories over database into the services.
// Mutating use cases report to logger through the log observer.
func NewServices(database *sql.DB, cfg config.Config, logger *logrus.Logger) *Services {
	users := repository.NewSQLiteUserRepo(database)
	segments := repository.NewSQLiteSegmentFunctionRepo(database)
	scenarios := repository.NewSQLiteScenarioRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	sequences := repository.NewSQLiteProjectSequenceRepo(database)
	requirements := repository.NewSQLiteRequirementRepo(database)
	resources := repository.NewSQLiteResourceRepo(database)
	capabilities := repository.NewSQLiteCapabilityRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	dependencies := repository.NewSQLiteDependencyRepo(database)
	allocations := repository.NewSQLiteAllocationRepo(database)
	audit := repository.NewSQLiteAuditRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	return &Services{
		Users:     service.NewUserService(users),
		Scenarios: service.NewScenarioService(scenarios, uow, audit, ScenarioOptions(cfg), observer),
		Planning: service.NewPlanningService(scenarios, segments, projects, sequences, requirements,
			resources, capabilities, milestones, dependencies, audit, cfg.Scenario.ProjectPrefix, observer),
		Allocations: service.NewAllocationService(scenarios, uow, allocations, resources, projects,
			milestones, capabilities, requirements, audit, observer),
		Match: service.NewMatchService(scenarios, projects, capabilities, requirements),
		Risk:  service.NewRiskService(projects, allocations, requirements, dependencies),
	}
}
