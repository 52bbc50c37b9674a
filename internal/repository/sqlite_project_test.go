package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject(&sc.ID, "Apollo",
		testutil.WithBudget(1_000_000, 400_000, 1_100_000),
		testutil.WithSchedule(testutil.Date(2025, 1, 1), testutil.Date(2025, 6, 30)),
		testutil.WithDesiredCompletion(testutil.Date(2025, 5, 31)),
		testutil.WithHealth(domain.HealthYellow))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", fetched.Name)
	require.NotNil(t, fetched.ScenarioID)
	assert.Equal(t, sc.ID, *fetched.ScenarioID)
	assert.Equal(t, 1_100_000.0, fetched.ForecastCost)
	assert.Equal(t, domain.HealthYellow, fetched.HealthStatus)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, "2025-06-30", fetched.EndDate.Format("2006-01-02"))
	require.NotNil(t, fetched.DesiredCompletionDate)
	assert.Equal(t, "2025-05-31", fetched.DesiredCompletionDate.Format("2006-01-02"))
	assert.Nil(t, fetched.ActualEndDate)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_ListByScenario_SeparatesBaseline(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "Scoped")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(nil, "Legacy")))
	deleted := testutil.NewTestProject(&sc.ID, "Gone")
	require.NoError(t, repo.Create(ctx, deleted))
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	scoped, err := repo.ListByScenario(ctx, &sc.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Scoped", scoped[0].Name)

	baseline, err := repo.ListByScenario(ctx, nil)
	require.NoError(t, err)
	require.Len(t, baseline, 1)
	assert.Equal(t, "Legacy", baseline[0].Name)
	assert.Nil(t, baseline[0].ScenarioID)
}

func TestProjectRepo_ListBySegmentFunction(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	ctx := context.Background()

	seg := &domain.SegmentFunction{Name: "Retail"}
	require.NoError(t, NewSQLiteSegmentFunctionRepo(database).Create(ctx, seg))

	repo := NewSQLiteProjectRepo(database)
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "In segment", testutil.WithSegment(seg.ID))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "No segment")))

	got, err := repo.ListBySegmentFunction(ctx, seg.ID, &sc.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "In segment", got[0].Name)
}

func TestProjectRepo_UpdateBumpsUpdatedAt(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject(&sc.ID, "Apollo")
	proj.CreatedAt = proj.CreatedAt.AddDate(0, 0, -3)
	proj.UpdatedAt = proj.CreatedAt
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Apollo II"
	proj.ActualEndDate = testutil.Date(2025, 7, 4)
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo II", fetched.Name)
	require.NotNil(t, fetched.ActualEndDate)
	assert.True(t, fetched.UpdatedAt.After(fetched.CreatedAt))
}

func TestProjectRepo_DuplicateNumberInScenarioRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "A", testutil.WithProjectNumber("PRJ-0001"))))
	err := repo.Create(ctx, testutil.NewTestProject(&sc.ID, "B", testutil.WithProjectNumber("PRJ-0001")))
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestProjectSequenceRepo_StartsAtOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	seq := NewSQLiteProjectSequenceRepo(database)
	ctx := context.Background()

	first, err := seq.NextProjectNumber(ctx, &sc.ID, "PRJ")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-0001", first)

	second, err := seq.NextProjectNumber(ctx, &sc.ID, "PRJ")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-0002", second)
}

func TestProjectSequenceRepo_SeedsFromExistingNumbers(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	repo := NewSQLiteProjectRepo(database)
	seq := NewSQLiteProjectSequenceRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "Old", testutil.WithProjectNumber("PRJ-0041"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(nil, "Baseline", testutil.WithProjectNumber("PRJ-0900"))))

	next, err := seq.NextProjectNumber(ctx, &sc.ID, "PRJ")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-0042", next, "baseline rows must not seed a scenario's counter")

	base, err := seq.NextProjectNumber(ctx, nil, "PRJ")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-0901", base)
}

func TestProjectSequenceRepo_ScopesAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	user, a := seedScenario(t, database)
	ctx := context.Background()
	b := testutil.NewTestScenario(user.ID, "Other")
	require.NoError(t, NewSQLiteScenarioRepo(database).Create(ctx, b))

	seq := NewSQLiteProjectSequenceRepo(database)
	for i := 0; i < 3; i++ {
		_, err := seq.NextProjectNumber(ctx, &a.ID, "PRJ")
		require.NoError(t, err)
	}
	got, err := seq.NextProjectNumber(ctx, &b.ID, "PRJ")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-0001", got)
}

func TestProjectSequenceRepo_SkipsManualNumbers(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, sc := seedScenario(t, database)
	repo := NewSQLiteProjectRepo(database)
	seq := NewSQLiteProjectSequenceRepo(database)
	ctx := context.Background()

	first, err := seq.NextProjectNumber(ctx, &sc.ID, "PRJ")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "Auto", testutil.WithProjectNumber(first))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "Manual", testutil.WithProjectNumber("PRJ-0002"))))

	next, err := seq.NextProjectNumber(ctx, &sc.ID, "PRJ")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-0003", next)
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(&sc.ID, "Auto again", testutil.WithProjectNumber(next))))
}

func TestProjectRepo_BaselineNumbersUnique(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(nil, "A", testutil.WithProjectNumber("PRJ-0001"))))
	err := repo.Create(ctx, testutil.NewTestProject(nil, "B", testutil.WithProjectNumber("PRJ-0001")))
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
