package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

const dateLayout = "2006-01-02"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// parseNullableTime reads an optional column written with layout. NULL,
// empty and unparsable values all come back as nil.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString formats t for storage, or NULL for nil.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

// nullable dereferences an optional column value, mapping nil to NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func parseNullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func parseNullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// timestamps returns created/updated strings, defaulting zero values to now.
func timestamps(created, updated time.Time) (string, string) {
	now := time.Now().UTC()
	if created.IsZero() {
		created = now
	}
	if updated.IsZero() {
		updated = created
	}
	return created.UTC().Format(time.RFC3339), updated.UTC().Format(time.RFC3339)
}

func parseTimestamps(createdStr, updatedStr string, created, updated *time.Time) error {
	var err error
	if *created, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if *updated, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}

// scopeClause renders the scenario filter for a scoped table. A nil scenario
// selects the unscoped baseline rows.
func scopeClause(column string, scenarioID *int64) (string, []any) {
	if scenarioID == nil {
		return column + " IS NULL", nil
	}
	return column + " = ?", []any{*scenarioID}
}

// notFound maps sql.ErrNoRows onto domain.ErrNotFound.
func notFound(err error, entity string, key any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// insertID runs an INSERT through ExecContext and returns the new row id.
func insertID(res sql.Result, err error, entity string) (int64, error) {
	if err != nil {
		return 0, writeError("inserting", entity, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading %s id: %w", entity, err)
	}
	return id, nil
}

// writeError wraps a failed write. Unique index violations surface as
// domain.ErrInvalid so callers can report a duplicate.
func writeError(verb, entity string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s %s: duplicate value (%v): %w", verb, entity, err, domain.ErrInvalid)
	}
	return fmt.Errorf("%s %s: %w", verb, entity, err)
}

// softDelete clears is_active on one row of a scoped table.
func softDelete(ctx context.Context, conn db.DBTX, table string, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET is_active = 0, updated_at = ? WHERE id = ? AND is_active = 1`, table)
	res, err := conn.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("soft-deleting %s %d: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft-deleting %s %d: %w", table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func marshalMetadata(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}
	return string(b), nil
}

func unmarshalMetadata(s string) (map[string]any, error) {
	m := map[string]any{}
	if s == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return m, nil
}
