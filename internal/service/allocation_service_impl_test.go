package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationService_OverlapAfterEachWrite(t *testing.T) {
	_, r := setupRepos(t)
	svc := newAllocationSvc(r)
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)
	sid := &g.scenario.ID
	ada := g.resources[0].ID

	// Ada already carries an untimed 60% on the first project. Without any
	// timed rows the peak is the plain sum.
	first, err := svc.Create(ctx, owner, testutil.NewTestAllocation(sid, ada, g.projects[1].ID, 30))
	require.NoError(t, err)
	assert.Equal(t, 90, first.Overlap.MaxConcurrent)
	assert.False(t, first.Overlap.OverAllocated)

	// Once windows exist the untimed rows drop out of the sweep.
	require.NoError(t, r.allocations.SoftDelete(ctx, g.allocs[0].ID))
	_, err = svc.Update(ctx, owner, first.Allocation.ID, contract.AllocationPatch{
		Percentage: testutil.Ptr(50),
		StartDate:  &contract.Date{Time: *testutil.Date(2026, 1, 1)},
		EndDate:    &contract.Date{Time: *testutil.Date(2026, 3, 31)},
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, owner, testutil.NewTestAllocation(sid, ada, g.projects[0].ID, 30,
		testutil.WithWindow(testutil.Date(2026, 2, 1), testutil.Date(2026, 4, 30))))
	require.NoError(t, err)
	assert.Equal(t, 80, second.Overlap.MaxConcurrent)
	assert.False(t, second.Overlap.OverAllocated)
	require.NotNil(t, second.Overlap.ScenarioID)
	assert.Equal(t, g.scenario.ID, *second.Overlap.ScenarioID)

	third, err := svc.Create(ctx, owner, testutil.NewTestAllocation(sid, ada, g.projects[1].ID, 40,
		testutil.WithWindow(testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 15))))
	require.NoError(t, err)
	assert.Equal(t, 120, third.Overlap.MaxConcurrent)
	assert.True(t, third.Overlap.OverAllocated)

	after, err := svc.Delete(ctx, owner, third.Allocation.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, after.MaxConcurrent)
	assert.False(t, after.OverAllocated)

	got, err := svc.Overlap(ctx, ada, nil)
	require.NoError(t, err)
	assert.Equal(t, 80, got.MaxConcurrent)

	baseline, err := svc.Overlap(ctx, ada, testutil.Ptr(int64(0)))
	require.NoError(t, err)
	assert.Nil(t, baseline.ScenarioID)
	assert.Zero(t, baseline.MaxConcurrent)
}

func TestAllocationService_InheritsProjectScenario(t *testing.T) {
	_, r := setupRepos(t)
	svc := newAllocationSvc(r)
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)

	a := testutil.NewTestAllocation(nil, g.resources[1].ID, g.projects[0].ID, 10)
	resp, err := svc.Create(ctx, owner, a)
	require.NoError(t, err)
	require.NotNil(t, resp.Allocation.ScenarioID)
	assert.Equal(t, g.scenario.ID, *resp.Allocation.ScenarioID)
}

func TestAllocationService_StoresMatchScore(t *testing.T) {
	_, r := setupRepos(t)
	svc := newAllocationSvc(r)
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)
	sid := &g.scenario.ID

	resp, err := svc.Create(ctx, owner, testutil.NewTestAllocation(sid, g.resources[1].ID, g.projects[1].ID, 20,
		testutil.WithLinks(g.caps[1].ID, g.reqs[1].ID)))
	require.NoError(t, err)
	require.NotNil(t, resp.Allocation.MatchScore)
	assert.Equal(t, 100, *resp.Allocation.MatchScore)

	stored, err := r.allocations.GetByID(ctx, resp.Allocation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MatchScore)
	assert.Equal(t, 100, *stored.MatchScore)

	// Dropping one link clears the score.
	updated, err := svc.Update(ctx, owner, resp.Allocation.ID, contract.AllocationPatch{
		RequirementID: testutil.Ptr(int64(0)),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Allocation.RequirementID)
	assert.Nil(t, updated.Allocation.MatchScore)
}

func TestAllocationService_RejectsBadLinks(t *testing.T) {
	_, r := setupRepos(t)
	svc := newAllocationSvc(r)
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)
	sid := &g.scenario.ID
	res := g.resources[0].ID
	p1 := g.projects[1].ID

	tests := []struct {
		name string
		a    *domain.Allocation
		err  error
	}{
		{"percentage above 100", testutil.NewTestAllocation(sid, res, p1, 120), domain.ErrInvalid},
		{"missing project", testutil.NewTestAllocation(sid, res, 9999, 10), domain.ErrInvalid},
		{"missing resource", testutil.NewTestAllocation(sid, 9999, p1, 10), domain.ErrInvalid},
		{"milestone of another project", testutil.NewTestAllocation(sid, res, p1, 10,
			testutil.WithMilestone(g.milestones[0].ID)), domain.ErrInvalid},
		{"requirement of another project", testutil.NewTestAllocation(sid, res, p1, 10,
			testutil.WithLinks(g.caps[0].ID, g.reqs[0].ID)), domain.ErrInvalid},
		{"window ends before it starts", testutil.NewTestAllocation(sid, res, p1, 10,
			testutil.WithWindow(testutil.Date(2026, 5, 1), testutil.Date(2026, 4, 1))), domain.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner, tt.a)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAllocationService_Permissions(t *testing.T) {
	_, r := setupRepos(t)
	svc := newAllocationSvc(r)
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	stranger := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)

	_, err := svc.Create(ctx, stranger, testutil.NewTestAllocation(&g.scenario.ID, g.resources[0].ID, g.projects[0].ID, 10))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Update(ctx, stranger, g.allocs[0].ID, contract.AllocationPatch{Percentage: testutil.Ptr(10)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Delete(ctx, stranger, g.allocs[0].ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Delete(ctx, owner, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Overlap(ctx, 9999, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// readFailingUoW breaks every read issued after the first write of a
// transaction.
type readFailingUoW struct {
	inner db.UnitOfWork
	err   error
}

func (u readFailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &readFailingTx{DBTX: tx, err: u.err})
	})
}

type readFailingTx struct {
	db.DBTX
	wrote bool
	err   error
}

func (t *readFailingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.wrote = true
	return t.DBTX.ExecContext(ctx, query, args...)
}

func (t *readFailingTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if t.wrote {
		return nil, t.err
	}
	return t.DBTX.QueryContext(ctx, query, args...)
}

func TestAllocationService_FailedRecomputeRollsBackWrite(t *testing.T) {
	database, r := setupRepos(t)
	ctx := context.Background()
	owner := createUser(t, r, domain.RolePlanner)
	g := seedGraph(t, r, owner)
	sid := &g.scenario.ID
	ada := g.resources[0].ID

	injected := errors.New("disk gone")
	r.uow = readFailingUoW{inner: testutil.NewTestUoW(database), err: injected}
	svc := newAllocationSvc(r)

	before, err := r.allocations.ListByResource(ctx, ada, sid)
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner, testutil.NewTestAllocation(sid, ada, g.projects[1].ID, 30))
	assert.ErrorIs(t, err, injected)
	_, err = svc.Update(ctx, owner, g.allocs[0].ID, contract.AllocationPatch{Percentage: testutil.Ptr(10)})
	assert.ErrorIs(t, err, injected)
	_, err = svc.Delete(ctx, owner, g.allocs[0].ID)
	assert.ErrorIs(t, err, injected)

	after, err := r.allocations.ListByResource(ctx, ada, sid)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Percentage, after[i].Percentage)
	}
}
