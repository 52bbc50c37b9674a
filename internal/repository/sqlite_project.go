package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, scenario_id, project_number, name, segment_function_id, budget, actual_cost,
	forecast_cost, start_date, end_date, actual_end_date, desired_completion_date, health_status,
	is_active, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.HealthStatus == "" {
		p.HealthStatus = domain.HealthGreen
	}
	created, updated := timestamps(p.CreatedAt, p.UpdatedAt)
	query := `INSERT INTO projects (scenario_id, project_number, name, segment_function_id, budget, actual_cost,
			forecast_cost, start_date, end_date, actual_end_date, desired_completion_date, health_status,
			is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		nullable(p.ScenarioID),
		p.ProjectNumber,
		p.Name,
		nullable(p.SegmentFunctionID),
		p.Budget,
		p.ActualCost,
		p.ForecastCost,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableTimeToString(p.ActualEndDate, dateLayout),
		nullableTimeToString(p.DesiredCompletionDate, dateLayout),
		string(p.HealthStatus),
		created,
		updated,
	)
	id, err := insertID(res, err, "project")
	if err != nil {
		return err
	}
	p.ID = id
	p.IsActive = true
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Project, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ` + scope + ` AND is_active = 1 ORDER BY id`
	return r.list(ctx, query, args...)
}

func (r *SQLiteProjectRepo) ListBySegmentFunction(ctx context.Context, segmentFunctionID int64, scenarioID *int64) ([]*domain.Project, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE segment_function_id = ? AND ` + scope + ` AND is_active = 1 ORDER BY id`
	return r.list(ctx, query, append([]any{segmentFunctionID}, args...)...)
}

func (r *SQLiteProjectRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET project_number = ?, name = ?, segment_function_id = ?, budget = ?,
			actual_cost = ?, forecast_cost = ?, start_date = ?, end_date = ?, actual_end_date = ?,
			desired_completion_date = ?, health_status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.ProjectNumber,
		p.Name,
		nullable(p.SegmentFunctionID),
		p.Budget,
		p.ActualCost,
		p.ForecastCost,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableTimeToString(p.ActualEndDate, dateLayout),
		nullableTimeToString(p.DesiredCompletionDate, dateLayout),
		string(p.HealthStatus),
		nowUTC(),
		p.ID,
	)
	if err != nil {
		return writeError("updating", "project", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "projects", id)
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var p domain.Project
	var scenarioID, segmentID sql.NullInt64
	var start, end, actualEnd, desired sql.NullString
	var health, createdAt, updatedAt string
	var active int
	err := s.Scan(
		&p.ID, &scenarioID, &p.ProjectNumber, &p.Name, &segmentID,
		&p.Budget, &p.ActualCost, &p.ForecastCost,
		&start, &end, &actualEnd, &desired,
		&health, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ScenarioID = parseNullableInt64(scenarioID)
	p.SegmentFunctionID = parseNullableInt64(segmentID)
	p.StartDate = parseNullableTime(start, dateLayout)
	p.EndDate = parseNullableTime(end, dateLayout)
	p.ActualEndDate = parseNullableTime(actualEnd, dateLayout)
	p.DesiredCompletionDate = parseNullableTime(desired, dateLayout)
	p.HealthStatus = domain.HealthStatus(health)
	p.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
