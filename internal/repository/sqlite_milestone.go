package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

const milestoneColumns = `id, scenario_id, project_id, name, start_date, end_date, is_active, created_at, updated_at`

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	created, updated := timestamps(m.CreatedAt, m.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (scenario_id, project_id, name, start_date, end_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		nullable(m.ScenarioID), m.ProjectID, m.Name,
		nullableTimeToString(m.StartDate, dateLayout), nullableTimeToString(m.EndDate, dateLayout),
		created, updated,
	)
	id, err := insertID(res, err, "milestone")
	if err != nil {
		return err
	}
	m.ID = id
	m.IsActive = true
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id int64) (*domain.Milestone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	m, err := scanMilestone(row)
	if err != nil {
		return nil, notFound(err, "milestone", id)
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Milestone, error) {
	return r.list(ctx, `SELECT `+milestoneColumns+` FROM milestones
		WHERE project_id = ? AND is_active = 1 ORDER BY end_date, id`, projectID)
}

func (r *SQLiteMilestoneRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Milestone, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	return r.list(ctx, `SELECT `+milestoneColumns+` FROM milestones
		WHERE `+scope+` AND is_active = 1 ORDER BY id`, args...)
}

func (r *SQLiteMilestoneRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return out, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE milestones SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		m.Name, nullableTimeToString(m.StartDate, dateLayout), nullableTimeToString(m.EndDate, dateLayout),
		nowUTC(), m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "milestones", id)
}

func scanMilestone(s rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var scenarioID sql.NullInt64
	var start, end sql.NullString
	var createdAt, updatedAt string
	var active int
	err := s.Scan(&m.ID, &scenarioID, &m.ProjectID, &m.Name, &start, &end, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	m.ScenarioID = parseNullableInt64(scenarioID)
	m.StartDate = parseNullableTime(start, dateLayout)
	m.EndDate = parseNullableTime(end, dateLayout)
	m.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
