package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	users        *repository.SQLiteUserRepo
	segments     *repository.SQLiteSegmentFunctionRepo
	scenarios    *repository.SQLiteScenarioRepo
	projects     *repository.SQLiteProjectRepo
	sequences    *repository.SQLiteProjectSequenceRepo
	requirements *repository.SQLiteRequirementRepo
	resources    *repository.SQLiteResourceRepo
	capabilities *repository.SQLiteCapabilityRepo
	milestones   *repository.SQLiteMilestoneRepo
	dependencies *repository.SQLiteDependencyRepo
	allocations  *repository.SQLiteAllocationRepo
	audit        *repository.SQLiteAuditRepo
	uow          db.UnitOfWork
}

func setupRepos(t *testing.T) (*sql.DB, testRepos) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, testRepos{
		users:        repository.NewSQLiteUserRepo(database),
		segments:     repository.NewSQLiteSegmentFunctionRepo(database),
		scenarios:    repository.NewSQLiteScenarioRepo(database),
		projects:     repository.NewSQLiteProjectRepo(database),
		sequences:    repository.NewSQLiteProjectSequenceRepo(database),
		requirements: repository.NewSQLiteRequirementRepo(database),
		resources:    repository.NewSQLiteResourceRepo(database),
		capabilities: repository.NewSQLiteCapabilityRepo(database),
		milestones:   repository.NewSQLiteMilestoneRepo(database),
		dependencies: repository.NewSQLiteDependencyRepo(database),
		allocations:  repository.NewSQLiteAllocationRepo(database),
		audit:        repository.NewSQLiteAuditRepo(database),
		uow:          testutil.NewTestUoW(database),
	}
}

func newScenarioSvc(r testRepos, uow db.UnitOfWork, opts ScenarioOptions) ScenarioService {
	return NewScenarioService(r.scenarios, uow, r.audit, opts)
}

func newPlanningSvc(r testRepos) PlanningService {
	return NewPlanningService(r.scenarios, r.segments, r.projects, r.sequences, r.requirements,
		r.resources, r.capabilities, r.milestones, r.dependencies, r.audit, "PRJ")
}

func newAllocationSvc(r testRepos) AllocationService {
	return NewAllocationService(r.scenarios, r.uow, r.allocations, r.resources, r.projects,
		r.milestones, r.capabilities, r.requirements, r.audit)
}

func createUser(t *testing.T, r testRepos, role domain.Role) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(role)
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func createScenario(t *testing.T, r testRepos, owner *domain.User, name string, opts ...testutil.ScenarioOption) *domain.Scenario {
	t.Helper()
	sc := testutil.NewTestScenario(owner.ID, name, opts...)
	require.NoError(t, r.scenarios.Create(context.Background(), sc))
	return sc
}

// graph is a small scenario with every entity kind and both endpoint kinds.
type graph struct {
	scenario   *domain.Scenario
	projects   []*domain.Project
	reqs       []*domain.Requirement
	resources  []*domain.Resource
	caps       []*domain.Capability
	milestones []*domain.Milestone
	deps       []*domain.Dependency
	allocs     []*domain.Allocation
}

// seedGraph writes directly through the repositories so clone tests do not
// depend on the planning service.
func seedGraph(t *testing.T, r testRepos, owner *domain.User) graph {
	t.Helper()
	ctx := context.Background()
	g := graph{scenario: createScenario(t, r, owner, "Source plan", testutil.WithDescription("FY27"),
		testutil.WithMetadata(map[string]any{"quarter": "Q1"}))}
	sid := &g.scenario.ID

	for i, name := range []string{"Payments", "Ledger"} {
		p := testutil.NewTestProject(sid, name,
			testutil.WithProjectNumber([]string{"OLD-0007", "OLD-0042"}[i]),
			testutil.WithSchedule(testutil.Date(2026, 1, 1), testutil.Date(2026, 6, 30)))
		require.NoError(t, r.projects.Create(ctx, p))
		g.projects = append(g.projects, p)

		req := testutil.NewTestRequirement(sid, p.ID, "core", "go", "backend", domain.ProficiencyAdvanced, 2)
		require.NoError(t, r.requirements.Create(ctx, req))
		g.reqs = append(g.reqs, req)
	}
	for _, name := range []string{"Ada", "Grace"} {
		res := testutil.NewTestResource(sid, name)
		require.NoError(t, r.resources.Create(ctx, res))
		g.resources = append(g.resources, res)

		c := testutil.NewTestCapability(sid, res.ID, "core", "go", "backend", domain.ProficiencyExpert, true)
		require.NoError(t, r.capabilities.Create(ctx, c))
		g.caps = append(g.caps, c)
	}

	m := testutil.NewTestMilestone(sid, g.projects[0].ID, "Beta", testutil.Date(2026, 3, 31))
	require.NoError(t, r.milestones.Create(ctx, m))
	g.milestones = append(g.milestones, m)

	p0 := domain.EntityRef{Kind: domain.KindProject, ID: g.projects[0].ID}
	p1 := domain.EntityRef{Kind: domain.KindProject, ID: g.projects[1].ID}
	m0 := domain.EntityRef{Kind: domain.KindMilestone, ID: m.ID}
	for _, edge := range [][2]domain.EntityRef{{p0, p1}, {m0, p1}} {
		d := testutil.NewTestDependency(sid, edge[0], edge[1])
		require.NoError(t, r.dependencies.Create(ctx, d))
		g.deps = append(g.deps, d)
	}

	a0 := testutil.NewTestAllocation(sid, g.resources[0].ID, g.projects[0].ID, 60,
		testutil.WithMilestone(m.ID), testutil.WithLinks(g.caps[0].ID, g.reqs[0].ID))
	a1 := testutil.NewTestAllocation(sid, g.resources[1].ID, g.projects[1].ID, 40,
		testutil.WithWindow(testutil.Date(2026, 2, 1), testutil.Date(2026, 4, 30)))
	for _, a := range []*domain.Allocation{a0, a1} {
		require.NoError(t, r.allocations.Create(ctx, a))
		g.allocs = append(g.allocs, a)
	}
	return g
}

func countScenarios(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&n))
	return n
}
