package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

const dependencyColumns = `id, scenario_id, predecessor_kind, predecessor_id, predecessor_anchor,
	successor_kind, successor_id, successor_anchor, dependency_type, lag_days, is_active, created_at, updated_at`

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	created, updated := timestamps(d.CreatedAt, d.UpdatedAt)
	query := `INSERT INTO project_dependencies (scenario_id, predecessor_kind, predecessor_id, predecessor_anchor,
			successor_kind, successor_id, successor_anchor, dependency_type, lag_days, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		nullable(d.ScenarioID),
		string(d.Predecessor.Kind), d.Predecessor.ID, string(d.Predecessor.Anchor),
		string(d.Successor.Kind), d.Successor.ID, string(d.Successor.Anchor),
		string(d.DependencyType), d.LagDays,
		created, updated,
	)
	id, err := insertID(res, err, "dependency")
	if err != nil {
		return err
	}
	d.ID = id
	d.IsActive = true
	return nil
}

func (r *SQLiteDependencyRepo) GetByID(ctx context.Context, id int64) (*domain.Dependency, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dependencyColumns+` FROM project_dependencies WHERE id = ?`, id)
	d, err := scanDependency(row)
	if err != nil {
		return nil, notFound(err, "dependency", id)
	}
	return d, nil
}

func (r *SQLiteDependencyRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Dependency, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	rows, err := r.db.QueryContext(ctx, `SELECT `+dependencyColumns+` FROM project_dependencies
		WHERE `+scope+` AND is_active = 1 ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var out []*domain.Dependency
	for rows.Next() {
		d, err := scanDependency(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning dependency row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return out, nil
}

func (r *SQLiteDependencyRepo) IncomingCountsByProject(ctx context.Context, scenarioID *int64) (map[int64]int, error) {
	scope, args := scopeClause("d.scenario_id", scenarioID)
	query := `SELECT
			CASE WHEN d.successor_kind = 'project' THEN d.successor_id ELSE m.project_id END AS project_id,
			COUNT(*)
		FROM project_dependencies d
		LEFT JOIN milestones m ON d.successor_kind = 'milestone' AND m.id = d.successor_id
		WHERE ` + scope + ` AND d.is_active = 1
		GROUP BY 1`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting incoming dependencies: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var projectID sql.NullInt64
		var n int
		if err := rows.Scan(&projectID, &n); err != nil {
			return nil, fmt.Errorf("scanning incoming dependency count: %w", err)
		}
		if projectID.Valid {
			counts[projectID.Int64] += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating incoming dependency counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteDependencyRepo) Update(ctx context.Context, d *domain.Dependency) error {
	query := `UPDATE project_dependencies SET predecessor_anchor = ?, successor_anchor = ?, dependency_type = ?,
			lag_days = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(d.Predecessor.Anchor), string(d.Successor.Anchor), string(d.DependencyType), d.LagDays,
		nowUTC(), d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "project_dependencies", id)
}

func scanDependency(s rowScanner) (*domain.Dependency, error) {
	var d domain.Dependency
	var scenarioID sql.NullInt64
	var predKind, predAnchor, sucKind, sucAnchor, depType, createdAt, updatedAt string
	var active int
	err := s.Scan(
		&d.ID, &scenarioID,
		&predKind, &d.Predecessor.ID, &predAnchor,
		&sucKind, &d.Successor.ID, &sucAnchor,
		&depType, &d.LagDays, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ScenarioID = parseNullableInt64(scenarioID)
	d.Predecessor.Kind = domain.EntityKind(predKind)
	d.Predecessor.Anchor = domain.Anchor(predAnchor)
	d.Successor.Kind = domain.EntityKind(sucKind)
	d.Successor.Anchor = domain.Anchor(sucAnchor)
	d.DependencyType = domain.DependencyType(depType)
	d.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
