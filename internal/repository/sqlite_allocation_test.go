package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationRepo_CreateUpdateAndListByResource(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	ctx := context.Background()
	sid := &sc.ID

	p := testutil.NewTestProject(sid, "Apollo")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, p))
	res := testutil.NewTestResource(sid, "Ada")
	require.NoError(t, NewSQLiteResourceRepo(database).Create(ctx, res))

	repo := NewSQLiteAllocationRepo(database)
	a := testutil.NewTestAllocation(sid, res.ID, p.ID, 60,
		testutil.WithWindow(testutil.Date(2025, 1, 1), testutil.Date(2025, 3, 31)))
	require.NoError(t, repo.Create(ctx, a))

	a.Percentage = 70
	a.MatchScore = testutil.Ptr(85)
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.ListByResource(ctx, res.ID, sid)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 70, got[0].Percentage)
	require.NotNil(t, got[0].MatchScore)
	assert.Equal(t, 85, *got[0].MatchScore)
	assert.True(t, got[0].IsTimed())

	other, err := repo.ListByResource(ctx, res.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, other, "baseline scope must not see scenario rows")

	require.NoError(t, repo.SoftDelete(ctx, a.ID))
	got, err = repo.ListByResource(ctx, res.ID, sid)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAuditRepo_AppendAssignsID(t *testing.T) {
	database := testutil.NewTestDB(t)
	user, sc := seedScenario(t, database)
	repo := NewSQLiteAuditRepo(database)
	ctx := context.Background()

	ev := &domain.AuditEvent{ActorID: user.ID, Action: "scenario.create", ScenarioID: &sc.ID,
		Detail: map[string]any{"name": sc.Name}}
	require.NoError(t, repo.Append(ctx, ev))
	assert.Len(t, ev.ID, 36)

	got, err := repo.ListByScenario(ctx, sc.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "scenario.create", got[0].Action)
	assert.Equal(t, sc.Name, got[0].Detail["name"])
}
