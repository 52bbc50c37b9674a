package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/google/uuid"
)

// SQLiteAuditRepo implements AuditRepo using a SQLite database.
type SQLiteAuditRepo struct {
	db db.DBTX
}

func NewSQLiteAuditRepo(conn db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: conn}
}

// Append stores an audit event, assigning an id and timestamp when unset.
func (r *SQLiteAuditRepo) Append(ctx context.Context, e *domain.AuditEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	detail, err := marshalMetadata(e.Detail)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, action, scenario_id, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ActorID, e.Action, nullable(e.ScenarioID), detail, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

func (r *SQLiteAuditRepo) ListByScenario(ctx context.Context, scenarioID int64) ([]*domain.AuditEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, action, scenario_id, detail, created_at FROM audit_log
		WHERE scenario_id = ? ORDER BY created_at, rowid`, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var sid sql.NullInt64
		var detail, createdAt string
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &sid, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		e.ScenarioID = parseNullableInt64(sid)
		if e.Detail, err = unmarshalMetadata(detail); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}
	return out, nil
}
