package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite; a duplicate
			// column means the statement already ran.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillProjectNumberSequences(db); err != nil {
		return fmt.Errorf("backfilling project number sequences: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		role       TEXT NOT NULL DEFAULT 'planner'
		           CHECK(role IN ('viewer','planner','domain_manager','administrator')),
		is_active  INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS segment_functions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		is_active  INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scenarios (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'planned'
		                    CHECK(status IN ('planned','published')),
		created_by          INTEGER NOT NULL REFERENCES users(id),
		published_by        INTEGER REFERENCES users(id),
		published_at        TEXT,
		parent_scenario_id  INTEGER REFERENCES scenarios(id),
		segment_function_id INTEGER REFERENCES segment_functions(id),
		metadata            TEXT NOT NULL DEFAULT '{}',
		is_active           INTEGER NOT NULL DEFAULT 1,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scenarios_owner ON scenarios(created_by, status, is_active)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id             INTEGER REFERENCES scenarios(id),
		project_number          TEXT NOT NULL,
		name                    TEXT NOT NULL,
		segment_function_id     INTEGER REFERENCES segment_functions(id),
		budget                  REAL NOT NULL DEFAULT 0,
		actual_cost             REAL NOT NULL DEFAULT 0,
		forecast_cost           REAL NOT NULL DEFAULT 0,
		start_date              TEXT,
		end_date                TEXT,
		actual_end_date         TEXT,
		desired_completion_date TEXT,
		health_status           TEXT NOT NULL DEFAULT 'Green'
		                        CHECK(health_status IN ('Green','Yellow','Red')),
		is_active               INTEGER NOT NULL DEFAULT 1,
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	// Baseline rows have a NULL scenario_id, which a plain composite UNIQUE
	// treats as distinct, so the index keys on scope 0 instead.
	`DROP INDEX IF EXISTS idx_projects_scenario_number`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_scope_number ON projects(COALESCE(scenario_id, 0), project_number)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_segment ON projects(segment_function_id, scenario_id)`,

	// scope_id is the scenario id, or 0 for unscoped baseline rows.
	`CREATE TABLE IF NOT EXISTS project_number_sequences (
		scope_id INTEGER PRIMARY KEY,
		prefix   TEXT NOT NULL,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS requirements (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id     INTEGER REFERENCES scenarios(id),
		project_id      INTEGER NOT NULL REFERENCES projects(id),
		application     TEXT NOT NULL DEFAULT '',
		technology      TEXT NOT NULL DEFAULT '',
		role            TEXT NOT NULL DEFAULT '',
		proficiency     TEXT NOT NULL DEFAULT 'Beginner'
		                CHECK(proficiency IN ('Beginner','Intermediate','Advanced','Expert')),
		required_count  INTEGER NOT NULL DEFAULT 1,
		fulfilled_count INTEGER NOT NULL DEFAULT 0,
		is_active       INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_requirements_project ON requirements(project_id)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id  INTEGER REFERENCES scenarios(id),
		name         TEXT NOT NULL,
		email        TEXT NOT NULL DEFAULT '',
		department   TEXT NOT NULL DEFAULT '',
		capacity_pct INTEGER NOT NULL DEFAULT 100,
		is_active    INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS capabilities (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id INTEGER REFERENCES scenarios(id),
		resource_id INTEGER NOT NULL REFERENCES resources(id),
		application TEXT NOT NULL DEFAULT '',
		technology  TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT '',
		proficiency TEXT NOT NULL DEFAULT 'Beginner'
		            CHECK(proficiency IN ('Beginner','Intermediate','Advanced','Expert')),
		is_primary  INTEGER NOT NULL DEFAULT 0,
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_capabilities_resource ON capabilities(resource_id)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id INTEGER REFERENCES scenarios(id),
		project_id  INTEGER NOT NULL REFERENCES projects(id),
		name        TEXT NOT NULL,
		start_date  TEXT,
		end_date    TEXT,
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS project_dependencies (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id        INTEGER REFERENCES scenarios(id),
		predecessor_kind   TEXT NOT NULL CHECK(predecessor_kind IN ('project','milestone')),
		predecessor_id     INTEGER NOT NULL,
		predecessor_anchor TEXT NOT NULL DEFAULT 'end' CHECK(predecessor_anchor IN ('start','end')),
		successor_kind     TEXT NOT NULL CHECK(successor_kind IN ('project','milestone')),
		successor_id       INTEGER NOT NULL,
		successor_anchor   TEXT NOT NULL DEFAULT 'start' CHECK(successor_anchor IN ('start','end')),
		dependency_type    TEXT NOT NULL DEFAULT 'FS' CHECK(dependency_type IN ('FS','SS','FF','SF')),
		lag_days           INTEGER NOT NULL DEFAULT 0,
		is_active          INTEGER NOT NULL DEFAULT 1,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_successor ON project_dependencies(successor_kind, successor_id)`,

	`CREATE TABLE IF NOT EXISTS resource_allocations (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id    INTEGER REFERENCES scenarios(id),
		resource_id    INTEGER NOT NULL REFERENCES resources(id),
		project_id     INTEGER NOT NULL REFERENCES projects(id),
		milestone_id   INTEGER REFERENCES milestones(id),
		percentage     INTEGER NOT NULL DEFAULT 0 CHECK(percentage BETWEEN 0 AND 100),
		start_date     TEXT,
		end_date       TEXT,
		capability_id  INTEGER REFERENCES capabilities(id),
		requirement_id INTEGER REFERENCES requirements(id),
		is_active      INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_resource ON resource_allocations(resource_id, is_active)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_project ON resource_allocations(project_id)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id          TEXT PRIMARY KEY,
		actor_id    INTEGER NOT NULL,
		action      TEXT NOT NULL,
		scenario_id INTEGER,
		detail      TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_scenario ON audit_log(scenario_id)`,

	// match_score was added after allocations shipped.
	`ALTER TABLE resource_allocations ADD COLUMN match_score INTEGER`,
}

// migrateBackfillProjectNumberSequences raises every scenario's counter to at
// least one past the highest numeric suffix already stored under that
// scenario's prefix. Idempotent.
func migrateBackfillProjectNumberSequences(db *sql.DB) error {
	ctx := context.Background()

	query := `UPDATE project_number_sequences
		SET next_seq = MAX(next_seq, (
			SELECT COALESCE(MAX(CAST(SUBSTR(p.project_number, LENGTH(project_number_sequences.prefix) + 2) AS INTEGER)), 0) + 1
			FROM projects p
			WHERE COALESCE(p.scenario_id, 0) = project_number_sequences.scope_id
			  AND p.project_number LIKE project_number_sequences.prefix || '-%'
		))`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("raising project number sequences: %w", err)
	}
	return nil
}
