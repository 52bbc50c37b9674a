package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/require"
)

// seedScenario inserts a planner and one planned scenario owned by them.
func seedScenario(t *testing.T, database *sql.DB) (*domain.User, *domain.Scenario) {
	t.Helper()
	ctx := context.Background()
	user := testutil.NewTestUser(domain.RolePlanner)
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, user))
	sc := testutil.NewTestScenario(user.ID, "Baseline plan")
	require.NoError(t, NewSQLiteScenarioRepo(database).Create(ctx, sc))
	return user, sc
}
