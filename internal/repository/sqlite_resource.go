package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	db db.DBTX
}

func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

const resourceColumns = `id, scenario_id, name, email, department, capacity_pct, is_active, created_at, updated_at`

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	if res.CapacityPct == 0 {
		res.CapacityPct = 100
	}
	created, updated := timestamps(res.CreatedAt, res.UpdatedAt)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (scenario_id, name, email, department, capacity_pct, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		nullable(res.ScenarioID), res.Name, res.Email, res.Department, res.CapacityPct, created, updated,
	)
	id, err := insertID(result, err, "resource")
	if err != nil {
		return err
	}
	res.ID = id
	res.IsActive = true
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id)
	res, err := scanResource(row)
	if err != nil {
		return nil, notFound(err, "resource", id)
	}
	return res, nil
}

func (r *SQLiteResourceRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Resource, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE `+scope+` AND is_active = 1 ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning resource row: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return out, nil
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE resources SET name = ?, email = ?, department = ?, capacity_pct = ?, updated_at = ? WHERE id = ?`,
		res.Name, res.Email, res.Department, res.CapacityPct, nowUTC(), res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "resources", id)
}

func scanResource(s rowScanner) (*domain.Resource, error) {
	var res domain.Resource
	var scenarioID sql.NullInt64
	var createdAt, updatedAt string
	var active int
	err := s.Scan(&res.ID, &scenarioID, &res.Name, &res.Email, &res.Department, &res.CapacityPct,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	res.ScenarioID = parseNullableInt64(scenarioID)
	res.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}
