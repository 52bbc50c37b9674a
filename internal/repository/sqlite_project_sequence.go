package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
)

// SQLiteProjectSequenceRepo allocates scenario-scoped project numbers
// atomically using the project_number_sequences table.
type SQLiteProjectSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteProjectSequenceRepo creates a new SQLiteProjectSequenceRepo.
func NewSQLiteProjectSequenceRepo(conn db.DBTX) *SQLiteProjectSequenceRepo {
	return &SQLiteProjectSequenceRepo{db: conn}
}

// NextProjectNumber returns the next "<prefix>-NNNN" number for the scenario.
// Before each allocation the counter is raised past the highest suffix stored
// in the scenario, so numbers never collide with existing rows, including
// numbers entered by hand.
func (r *SQLiteProjectSequenceRepo) NextProjectNumber(ctx context.Context, scenarioID *int64, prefix string) (string, error) {
	var scope int64
	if scenarioID != nil {
		scope = *scenarioID
	}

	seedQuery := `INSERT OR IGNORE INTO project_number_sequences (scope_id, prefix, next_seq)
		SELECT ?, ?, COALESCE(MAX(CAST(SUBSTR(project_number, LENGTH(?) + 2) AS INTEGER)), 0) + 1
		FROM projects
		WHERE COALESCE(scenario_id, 0) = ? AND project_number LIKE ? || '-%'`
	if _, err := r.db.ExecContext(ctx, seedQuery, scope, prefix, prefix, scope, prefix); err != nil {
		return "", fmt.Errorf("seeding project number sequence for scenario %d: %w", scope, err)
	}

	// Manually numbered projects may have overtaken the counter since seeding.
	raiseQuery := `UPDATE project_number_sequences
		SET next_seq = MAX(next_seq, (
			SELECT COALESCE(MAX(CAST(SUBSTR(p.project_number, LENGTH(project_number_sequences.prefix) + 2) AS INTEGER)), 0) + 1
			FROM projects p
			WHERE COALESCE(p.scenario_id, 0) = project_number_sequences.scope_id
			  AND p.project_number LIKE project_number_sequences.prefix || '-%'
		))
		WHERE scope_id = ?`
	if _, err := r.db.ExecContext(ctx, raiseQuery, scope); err != nil {
		return "", fmt.Errorf("raising project number sequence for scenario %d: %w", scope, err)
	}

	var next int
	var stored string
	allocQuery := `UPDATE project_number_sequences
		SET next_seq = next_seq + 1
		WHERE scope_id = ?
		RETURNING next_seq - 1, prefix`
	if err := r.db.QueryRowContext(ctx, allocQuery, scope).Scan(&next, &stored); err != nil {
		return "", fmt.Errorf("allocating project number for scenario %d: %w", scope, err)
	}

	return fmt.Sprintf("%s-%04d", stored, next), nil
}
