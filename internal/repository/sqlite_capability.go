package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteCapabilityRepo implements CapabilityRepo using a SQLite database.
type SQLiteCapabilityRepo struct {
	db db.DBTX
}

func NewSQLiteCapabilityRepo(conn db.DBTX) *SQLiteCapabilityRepo {
	return &SQLiteCapabilityRepo{db: conn}
}

const capabilityColumns = `id, scenario_id, resource_id, application, technology, role, proficiency,
	is_primary, is_active, created_at, updated_at`

func (r *SQLiteCapabilityRepo) Create(ctx context.Context, c *domain.Capability) error {
	created, updated := timestamps(c.CreatedAt, c.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO capabilities (scenario_id, resource_id, application, technology, role, proficiency,
			is_primary, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		nullable(c.ScenarioID), c.ResourceID, c.Application, c.Technology, c.Role,
		string(c.Proficiency), boolToInt(c.IsPrimary), created, updated,
	)
	id, err := insertID(res, err, "capability")
	if err != nil {
		return err
	}
	c.ID = id
	c.IsActive = true
	return nil
}

func (r *SQLiteCapabilityRepo) GetByID(ctx context.Context, id int64) (*domain.Capability, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+capabilityColumns+` FROM capabilities WHERE id = ?`, id)
	c, err := scanCapability(row)
	if err != nil {
		return nil, notFound(err, "capability", id)
	}
	return c, nil
}

func (r *SQLiteCapabilityRepo) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Capability, error) {
	return r.list(ctx, `SELECT `+capabilityColumns+` FROM capabilities
		WHERE resource_id = ? AND is_active = 1 ORDER BY is_primary DESC, id`, resourceID)
}

func (r *SQLiteCapabilityRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Capability, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	return r.list(ctx, `SELECT `+capabilityColumns+` FROM capabilities
		WHERE `+scope+` AND is_active = 1 ORDER BY id`, args...)
}

func (r *SQLiteCapabilityRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Capability, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing capabilities: %w", err)
	}
	defer rows.Close()

	var out []*domain.Capability
	for rows.Next() {
		c, err := scanCapability(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning capability row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating capabilities: %w", err)
	}
	return out, nil
}

func (r *SQLiteCapabilityRepo) Update(ctx context.Context, c *domain.Capability) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE capabilities SET application = ?, technology = ?, role = ?, proficiency = ?, is_primary = ?,
			updated_at = ?
		WHERE id = ?`,
		c.Application, c.Technology, c.Role, string(c.Proficiency), boolToInt(c.IsPrimary), nowUTC(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating capability: %w", err)
	}
	return nil
}

func (r *SQLiteCapabilityRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "capabilities", id)
}

func scanCapability(s rowScanner) (*domain.Capability, error) {
	var c domain.Capability
	var scenarioID sql.NullInt64
	var proficiency, createdAt, updatedAt string
	var primary, active int
	err := s.Scan(&c.ID, &scenarioID, &c.ResourceID, &c.Application, &c.Technology, &c.Role,
		&proficiency, &primary, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.ScenarioID = parseNullableInt64(scenarioID)
	c.Proficiency = domain.Proficiency(proficiency)
	c.IsPrimary = intToBool(primary)
	c.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// SQLiteRequirementRepo implements RequirementRepo using a SQLite database.
type SQLiteRequirementRepo struct {
	db db.DBTX
}

func NewSQLiteRequirementRepo(conn db.DBTX) *SQLiteRequirementRepo {
	return &SQLiteRequirementRepo{db: conn}
}

const requirementColumns = `id, scenario_id, project_id, application, technology, role, proficiency,
	required_count, fulfilled_count, is_active, created_at, updated_at`

func (r *SQLiteRequirementRepo) Create(ctx context.Context, req *domain.Requirement) error {
	created, updated := timestamps(req.CreatedAt, req.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO requirements (scenario_id, project_id, application, technology, role, proficiency,
			required_count, fulfilled_count, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		nullable(req.ScenarioID), req.ProjectID, req.Application, req.Technology, req.Role,
		string(req.Proficiency), req.RequiredCount, req.FulfilledCount, created, updated,
	)
	id, err := insertID(res, err, "requirement")
	if err != nil {
		return err
	}
	req.ID = id
	req.IsActive = true
	return nil
}

func (r *SQLiteRequirementRepo) GetByID(ctx context.Context, id int64) (*domain.Requirement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+requirementColumns+` FROM requirements WHERE id = ?`, id)
	req, err := scanRequirement(row)
	if err != nil {
		return nil, notFound(err, "requirement", id)
	}
	return req, nil
}

func (r *SQLiteRequirementRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Requirement, error) {
	return r.list(ctx, `SELECT `+requirementColumns+` FROM requirements
		WHERE project_id = ? AND is_active = 1 ORDER BY id`, projectID)
}

func (r *SQLiteRequirementRepo) ListByScenario(ctx context.Context, scenarioID *int64) ([]*domain.Requirement, error) {
	scope, args := scopeClause("scenario_id", scenarioID)
	return r.list(ctx, `SELECT `+requirementColumns+` FROM requirements
		WHERE `+scope+` AND is_active = 1 ORDER BY id`, args...)
}

func (r *SQLiteRequirementRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Requirement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requirements: %w", err)
	}
	defer rows.Close()

	var out []*domain.Requirement
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning requirement row: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requirements: %w", err)
	}
	return out, nil
}

func (r *SQLiteRequirementRepo) Update(ctx context.Context, req *domain.Requirement) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE requirements SET application = ?, technology = ?, role = ?, proficiency = ?,
			required_count = ?, fulfilled_count = ?, updated_at = ?
		WHERE id = ?`,
		req.Application, req.Technology, req.Role, string(req.Proficiency),
		req.RequiredCount, req.FulfilledCount, nowUTC(), req.ID,
	)
	if err != nil {
		return fmt.Errorf("updating requirement: %w", err)
	}
	return nil
}

func (r *SQLiteRequirementRepo) SoftDelete(ctx context.Context, id int64) error {
	return softDelete(ctx, r.db, "requirements", id)
}

func scanRequirement(s rowScanner) (*domain.Requirement, error) {
	var req domain.Requirement
	var scenarioID sql.NullInt64
	var proficiency, createdAt, updatedAt string
	var active int
	err := s.Scan(&req.ID, &scenarioID, &req.ProjectID, &req.Application, &req.Technology, &req.Role,
		&proficiency, &req.RequiredCount, &req.FulfilledCount, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	req.ScenarioID = parseNullableInt64(scenarioID)
	req.Proficiency = domain.Proficiency(proficiency)
	req.IsActive = intToBool(active)
	if err := parseTimestamps(createdAt, updatedAt, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	return &req, nil
}
