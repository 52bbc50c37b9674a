package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

const allocationColumns = `id, scenario_id, resource_id, project_id, milestone_id, percentage, start_date, end_date,
	capability_id, requirement_id, match_score, is_active, created_at, updated_at`

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	created, updated := timestamps(a.CreatedAt, a.UpdatedAt)
	query := `INSERT INTO resource_allocations (scenario_id, resource_id, project_id, milestone_id, percentage,
			start_date, end_date, capability_id, requirement_id, match_score, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		nullable(a.ScenarioID),
		a.ResourceID,
		a.ProjectID,
		nullable(a.MilestoneID),
		a.Percentage,
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		nullable(a.CapabilityID),
		nullable(a.RequirementID),
		nullable(a.MatchScore),
		created,
		updated,
	)
	id, err := insertID(res, err, "allocation")
	if err != nil {
		return err
	}
	a.ID = id
	a.IsActive = true
	return nil
}

func (r *SQLiteAllocationRepo) GetByID(ctx context.Context, id int64) (*domain.Allocation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+allocationColumns+` FROM resource_allocations WHERE id = ?`, id)
	a, err := scanAllocation(row)
	if err != nil {
		return nil, notFound(err, "allocation", id)
	}
	return a, nil
}

// ListByResource returns a resource's active allocations within one scenario.
func (r *SQLiteAllocationRepo) ListByResource(ctx context.Context, resourceID int64, scenarioID *int64) ([]*domain.Allocation, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	return r.list(ctx, `SELECT `+allocationColumns+` FROM resource_allocations
		WHERE resource_id = ? AND `+scope+` AND is_active = 1 ORDER BY start_date, id`,
		append([]any{resourceID}, args...)...)
}

func (r *SQLiteAllocationRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Allocation, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	return r.list(ctx, `SELECT `+allocationColumns+` FROM resource_allocations
		WHERE `+scope+` AND is_active = 1 ORDER BY id`, args...)
}

func (r *SQLiteAllocationRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Allocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning allocation row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return out, nil
}

func (r *SQLiteAllocationRepo) Update(ctx context.Context, a *domain.Allocation) error {
	query := `UPDATE resource_allocations SET milestone_id = ?, percentage = ?, start_date = ?, end_date = ?,
			capability_id = ?, requirement_id = ?, match_score = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullable(a.MilestoneID),
		a.Percentage,
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		nullable(a.CapabilityID),
		nullable(a.RequirementID),
		nullable(a.MatchScore),
		nowUTC(),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "resource_allocations", id)
}

func scanAllocation(s rowScanner) (*domain.Allocation, error) {
	var a domain.Allocation
	var scenarioID, milestoneID, capabilityID, requirementID, matchScore sql.NullInt64
	var start, end sql.NullString
	var createdAt, updatedAt string
	var active int
	err := s.Scan(
		&a.ID, &scenarioID, &a.ResourceID, &a.ProjectID, &milestoneID, &a.Percentage,
		&start, &end, &capabilityID, &requirementID, &matchScore,
		&active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ScenarioID = parseNullableInt64(scenarioID)
	a.MilestoneID = parseNullableInt64(milestoneID)
	a.StartDate = parseNullableTime(start, dateLayout)
	a.EndDate = parseNullableTime(end, dateLayout)
	a.CapabilityID = parseNullableInt64(capabilityID)
	a.RequirementID = parseNullableInt64(requirementID)
	a.MatchScore = parseNullableInt(matchScore)
	a.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
