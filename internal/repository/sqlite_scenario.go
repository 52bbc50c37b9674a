package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteScenarioRepo implements ScenarioRepo using a SQLite database.
type SQLiteScenarioRepo struct {
	db db.DBTX
}

// NewSQLiteScenarioRepo creates a new SQLiteScenarioRepo.
func NewSQLiteScenarioRepo(conn db.DBTX) *SQLiteScenarioRepo {
	return &SQLiteScenarioRepo{db: conn}
}

const scenarioColumns = `id, name, description, status, created_by, published_by, published_at,
	parent_scenario_id, segment_function_id, metadata, is_active, created_at, updated_at`

func (r *SQLiteScenarioRepo) Create(ctx context.Context, s *domain.Scenario) error {
	meta, err := marshalMetadata(s.Metadata)
	if err != nil {
		return err
	}
	if s.Status == "" {
		s.Status = domain.ScenarioPlanned
	}
	created, updated := timestamps(s.CreatedAt, s.UpdatedAt)
	query := `INSERT INTO scenarios (name, description, status, created_by, published_by, published_at,
			parent_scenario_id, segment_function_id, metadata, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Description,
		string(s.Status),
		s.CreatedBy,
		nullable(s.PublishedBy),
		nullableTimeToString(s.PublishedAt, time.RFC3339),
		nullable(s.ParentScenarioID),
		nullable(s.SegmentFunctionID),
		meta,
		1,
		created,
		updated,
	)
	id, err := insertID(res, err, "scenario")
	if err != nil {
		return err
	}
	s.ID = id
	s.IsActive = true
	return nil
}

func (r *SQLiteScenarioRepo) GetByID(ctx context.Context, id int64) (*domain.Scenario, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`, id)
	s, err := scanScenario(row)
	if err != nil {
		return nil, notFound(err, "scenario", id)
	}
	return s, nil
}

func (r *SQLiteScenarioRepo) List(ctx context.Context) ([]*domain.Scenario, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var out []*domain.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scenario row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}
	return out, nil
}

func (r *SQLiteScenarioRepo) Update(ctx context.Context, s *domain.Scenario) error {
	meta, err := marshalMetadata(s.Metadata)
	if err != nil {
		return err
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	query := `UPDATE scenarios SET name = ?, description = ?, status = ?, published_by = ?, published_at = ?,
			segment_function_id = ?, metadata = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		s.Name,
		s.Description,
		string(s.Status),
		nullable(s.PublishedBy),
		nullableTimeToString(s.PublishedAt, time.RFC3339),
		nullable(s.SegmentFunctionID),
		meta,
		s.UpdatedAt.UTC().Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating scenario: %w", err)
	}
	return nil
}

// SoftDelete clears the scenario's active flag. Scoped rows are not touched.
func (r *SQLiteScenarioRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "scenarios", id)
}

func (r *SQLiteScenarioRepo) CountActivePlannedByOwner(ctx context.Context, userID int64) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM scenarios WHERE created_by = ? AND status = 'planned' AND is_active = 1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting planned scenarios for user %d: %w", userID, err)
	}
	return n, nil
}

func (r *SQLiteScenarioRepo) Stats(ctx context.Context, id int64) (ScenarioStats, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM projects WHERE scenario_id = ? AND is_active = 1),
		(SELECT COUNT(*) FROM resources WHERE scenario_id = ? AND is_active = 1),
		(SELECT COUNT(*) FROM milestones WHERE scenario_id = ? AND is_active = 1),
		(SELECT COUNT(*) FROM project_dependencies WHERE scenario_id = ? AND is_active = 1),
		(SELECT COUNT(*) FROM resource_allocations WHERE scenario_id = ? AND is_active = 1)`
	var st ScenarioStats
	err := r.db.QueryRowContext(ctx, query, id, id, id, id, id).Scan(
		&st.ProjectCount, &st.ResourceCount, &st.MilestoneCount, &st.DependencyCount, &st.AllocationCount,
	)
	if err != nil {
		return ScenarioStats{}, fmt.Errorf("counting scenario %d entities: %w", id, err)
	}
	return st, nil
}

func scanScenario(s rowScanner) (*domain.Scenario, error) {
	var sc domain.Scenario
	var status, meta, createdAt, updatedAt string
	var publishedBy, parentID, segmentID sql.NullInt64
	var publishedAt sql.NullString
	var active int
	err := s.Scan(
		&sc.ID, &sc.Name, &sc.Description, &status, &sc.CreatedBy,
		&publishedBy, &publishedAt, &parentID, &segmentID,
		&meta, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	sc.Status = domain.ScenarioStatus(status)
	sc.PublishedBy = parseNullableInt64(publishedBy)
	sc.PublishedAt = parseNullableTime(publishedAt, time.RFC3339)
	sc.ParentScenarioID = parseNullableInt64(parentID)
	sc.SegmentFunctionID = parseNullableInt64(segmentID)
	sc.IsActive = intToBool(active)
	if sc.Metadata, err = unmarshalMetadata(meta); err != nil {
		return nil, err
	}
	if err := parseTimestamps(createdAt, updatedAt, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return nil, err
	}
	return &sc, nil
}
