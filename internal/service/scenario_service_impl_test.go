package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioService_CreateAppliesQuota(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	planner := createUser(t, r, domain.RolePlanner)

	for _, name := range []string{"A", "B"} {
		sc, err := svc.Create(ctx, planner, contract.CreateScenarioRequest{Name: name})
		require.NoError(t, err)
		assert.Equal(t, domain.ScenarioPlanned, sc.Status)
		assert.Equal(t, planner.ID, sc.CreatedBy)
	}

	_, err := svc.Create(ctx, planner, contract.CreateScenarioRequest{Name: "C"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	// Another user has their own budget.
	other := createUser(t, r, domain.RolePlanner)
	_, err = svc.Create(ctx, other, contract.CreateScenarioRequest{Name: "C"})
	assert.NoError(t, err)
}

func TestScenarioService_QuotaIgnoresPublishedAndDeleted(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	admin := createUser(t, r, domain.RoleAdministrator)

	a, err := svc.Create(ctx, admin, contract.CreateScenarioRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, admin, contract.CreateScenarioRequest{Name: "B"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, admin, a.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, admin, b.ID))

	_, err = svc.Create(ctx, admin, contract.CreateScenarioRequest{Name: "C"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, contract.CreateScenarioRequest{Name: "D"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, contract.CreateScenarioRequest{Name: "E"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestScenarioService_ZeroQuotaDisablesCheck(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), ScenarioOptions{})
	ctx := context.Background()
	planner := createUser(t, r, domain.RolePlanner)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, planner, contract.CreateScenarioRequest{Name: "plan"})
		require.NoError(t, err)
	}
}

func TestScenarioService_CreateValidates(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()

	_, err := svc.Create(ctx, createUser(t, r, domain.RolePlanner), contract.CreateScenarioRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Create(ctx, nil, contract.CreateScenarioRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestScenarioService_Lifecycle(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	manager := createUser(t, r, domain.RoleDomainManager)

	sc, err := svc.Create(ctx, owner, contract.CreateScenarioRequest{Name: "Plan"})
	require.NoError(t, err)

	// Planners cannot publish, even their own scenarios.
	_, err = svc.Publish(ctx, owner, sc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	published, err := svc.Publish(ctx, manager, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScenarioPublished, published.Status)
	require.NotNil(t, published.PublishedBy)
	assert.Equal(t, manager.ID, *published.PublishedBy)
	assert.NotNil(t, published.PublishedAt)

	_, err = svc.Publish(ctx, manager, sc.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPublished)

	err = svc.Delete(ctx, owner, sc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = svc.Update(ctx, owner, sc.ID, contract.UpdateScenarioRequest{Name: testutil.Ptr("Renamed")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := r.scenarios.GetByID(ctx, sc.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "Plan", stored.Name)
}

func TestScenarioService_DeleteIsSoft(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)

	sc, err := svc.Create(ctx, owner, contract.CreateScenarioRequest{Name: "Plan"})
	require.NoError(t, err)

	stranger := createUser(t, r, domain.RolePlanner)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, sc.ID), domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner, sc.ID))

	_, err = svc.Get(ctx, owner, sc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner, sc.ID), domain.ErrNotFound)

	row, err := r.scenarios.GetByID(ctx, sc.ID)
	require.NoError(t, err)
	assert.False(t, row.IsActive)
}

func TestScenarioService_Visibility(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	viewer := createUser(t, r, domain.RoleViewer)
	admin := createUser(t, r, domain.RoleAdministrator)

	private, err := svc.Create(ctx, owner, contract.CreateScenarioRequest{Name: "Private"})
	require.NoError(t, err)
	public := createScenario(t, r, admin, "Public", testutil.Published(admin.ID))

	_, err = svc.Get(ctx, viewer, private.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Stats(ctx, viewer, private.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.Get(ctx, viewer, public.ID)
	require.NoError(t, err)
	assert.Equal(t, "Public", got.Name)

	_, err = svc.Get(ctx, admin, private.ID)
	assert.NoError(t, err)

	list, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, public.ID, list[0].ID)

	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestScenarioService_UpdatePatchesFields(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)

	sc, err := svc.Create(ctx, owner, contract.CreateScenarioRequest{
		Name:        "Plan",
		Description: "first",
		Metadata:    map[string]any{"k": "v"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, sc.ID, contract.UpdateScenarioRequest{
		Description: testutil.Ptr("second"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Plan", updated.Name)
	assert.Equal(t, "second", updated.Description)
	assert.Equal(t, "v", updated.Metadata["k"])

	_, err = svc.Update(ctx, owner, sc.ID, contract.UpdateScenarioRequest{Name: testutil.Ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	stranger := createUser(t, r, domain.RolePlanner)
	_, err = svc.Update(ctx, stranger, sc.ID, contract.UpdateScenarioRequest{Name: testutil.Ptr("Mine")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestScenarioService_StatsCountsActiveRows(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)

	require.NoError(t, r.allocations.SoftDelete(ctx, g.allocs[1].ID))

	st, err := svc.Stats(ctx, owner, g.scenario.ID)
	require.NoError(t, err)
	assert.Equal(t, g.scenario.ID, st.ScenarioID)
	assert.Equal(t, 2, st.ProjectCount)
	assert.Equal(t, 2, st.ResourceCount)
	assert.Equal(t, 1, st.MilestoneCount)
	assert.Equal(t, 2, st.DependencyCount)
	assert.Equal(t, 1, st.AllocationCount)
}

func TestScenarioService_WritesAuditTrail(t *testing.T) {
	database, r := setupRepos(t)
	svc := newScenarioSvc(r, testutil.NewTestUoW(database), DefaultScenarioOptions())
	ctx := context.Background()
	admin := createUser(t, r, domain.RoleAdministrator)

	sc, err := svc.Create(ctx, admin, contract.CreateScenarioRequest{Name: "Plan"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, admin, sc.ID)
	require.NoError(t, err)

	events, err := r.audit.ListByScenario(ctx, sc.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "scenario.create", events[0].Action)
	assert.Equal(t, "scenario.publish", events[1].Action)
	assert.Equal(t, admin.ID, events[1].ActorID)
}
