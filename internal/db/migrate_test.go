package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUserAndScenario(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, name, role, created_at) VALUES (1, 'ana', 'planner', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scenarios (id, name, created_by, created_at, updated_at)
		VALUES (1, 'Base', 1, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"users", "segment_functions", "scenarios", "projects", "project_number_sequences",
		"requirements", "resources", "capabilities", "milestones",
		"project_dependencies", "resource_allocations", "audit_log",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_scenarios_owner",
		"idx_projects_scope_number",
		"idx_projects_segment",
		"idx_requirements_project",
		"idx_capabilities_resource",
		"idx_milestones_project",
		"idx_dependencies_successor",
		"idx_allocations_resource",
		"idx_allocations_project",
		"idx_audit_scenario",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_ScenarioStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	seedUserAndScenario(t, db)

	_, err := db.Exec(`INSERT INTO scenarios (name, status, created_by, created_at, updated_at)
		VALUES ('Bad', 'archived', 1, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown scenario status should be rejected")
}

func TestMigrate_ProjectNumberUniquePerScenario(t *testing.T) {
	db := openTestDB(t)
	seedUserAndScenario(t, db)
	_, err := db.Exec(`INSERT INTO scenarios (id, name, created_by, created_at, updated_at)
		VALUES (2, 'Other', 1, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO projects (scenario_id, project_number, name, created_at, updated_at)
		VALUES (?, ?, 'P', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`
	_, err = db.Exec(insert, 1, "PRJ-0001")
	require.NoError(t, err)
	_, err = db.Exec(insert, 2, "PRJ-0001")
	require.NoError(t, err, "same number in another scenario is allowed")
	_, err = db.Exec(insert, 1, "PRJ-0001")
	assert.Error(t, err, "duplicate number within a scenario should violate the unique index")

	_, err = db.Exec(insert, nil, "PRJ-0001")
	require.NoError(t, err)
	_, err = db.Exec(insert, nil, "PRJ-0001")
	assert.Error(t, err, "baseline rows share one numbering scope")
}

func TestMigrate_AllocationPercentageBounds(t *testing.T) {
	db := openTestDB(t)
	seedUserAndScenario(t, db)
	_, err := db.Exec(`INSERT INTO projects (id, scenario_id, project_number, name, created_at, updated_at)
		VALUES (1, 1, 'PRJ-0001', 'P', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO resources (id, scenario_id, name, created_at, updated_at)
		VALUES (1, 1, 'R', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO resource_allocations (scenario_id, resource_id, project_id, percentage, created_at, updated_at)
		VALUES (1, 1, 1, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`
	_, err = db.Exec(insert, 100)
	assert.NoError(t, err)
	_, err = db.Exec(insert, 101)
	assert.Error(t, err, "a single allocation above 100 should be rejected")
}

func TestMigrate_DependencyKindCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	seedUserAndScenario(t, db)

	_, err := db.Exec(`INSERT INTO project_dependencies
		(scenario_id, predecessor_kind, predecessor_id, successor_kind, successor_id, created_at, updated_at)
		VALUES (1, 'task', 1, 'project', 2, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown endpoint kind should be rejected")
}

func TestMigrateBackfillProjectNumberSequences_RaisesStaleCounter(t *testing.T) {
	db := openTestDB(t)
	seedUserAndScenario(t, db)

	_, err := db.Exec(`INSERT INTO projects (scenario_id, project_number, name, created_at, updated_at)
		VALUES (1, 'PRJ-0007', 'P', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO project_number_sequences (scope_id, prefix, next_seq) VALUES (1, 'PRJ', 2)`)
	require.NoError(t, err)

	require.NoError(t, migrateBackfillProjectNumberSequences(db))

	var next int
	require.NoError(t, db.QueryRow(`SELECT next_seq FROM project_number_sequences WHERE scope_id = 1`).Scan(&next))
	assert.Equal(t, 8, next)
}
