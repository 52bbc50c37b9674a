package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userColumns = `id, name, role, is_active, created_at`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, role, is_active, created_at) VALUES (?, ?, 1, ?)`,
		u.Name, string(u.Role), u.CreatedAt.Format(time.RFC3339),
	)
	id, err := insertID(res, err, "user")
	if err != nil {
		return err
	}
	u.ID = id
	u.IsActive = true
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (r *SQLiteUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = ?`, name)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user", name)
	}
	return u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func scanUser(s rowScanner) (*domain.User, error) {
	var u domain.User
	var role, createdAt string
	var active int
	if err := s.Scan(&u.ID, &u.Name, &role, &active, &createdAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.IsActive = intToBool(active)
	var err error
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}

// SQLiteSegmentFunctionRepo implements SegmentFunctionRepo using a SQLite database.
type SQLiteSegmentFunctionRepo struct {
	db db.DBTX
}

func NewSQLiteSegmentFunctionRepo(conn db.DBTX) *SQLiteSegmentFunctionRepo {
	return &SQLiteSegmentFunctionRepo{db: conn}
}

func (r *SQLiteSegmentFunctionRepo) Create(ctx context.Context, s *domain.SegmentFunction) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO segment_functions (name, is_active, created_at) VALUES (?, 1, ?)`,
		s.Name, s.CreatedAt.Format(time.RFC3339),
	)
	id, err := insertID(res, err, "segment function")
	if err != nil {
		return err
	}
	s.ID = id
	s.IsActive = true
	return nil
}

func (r *SQLiteSegmentFunctionRepo) GetByID(ctx context.Context, id int64) (*domain.SegmentFunction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, is_active, created_at FROM segment_functions WHERE id = ?`, id)
	s, err := scanSegmentFunction(row)
	if err != nil {
		return nil, notFound(err, "segment function", id)
	}
	return s, nil
}

func (r *SQLiteSegmentFunctionRepo) List(ctx context.Context) ([]*domain.SegmentFunction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, is_active, created_at FROM segment_functions WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing segment functions: %w", err)
	}
	defer rows.Close()

	var out []*domain.SegmentFunction
	for rows.Next() {
		s, err := scanSegmentFunction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning segment function row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segment functions: %w", err)
	}
	return out, nil
}

func scanSegmentFunction(s rowScanner) (*domain.SegmentFunction, error) {
	var sf domain.SegmentFunction
	var createdAt string
	var active int
	if err := s.Scan(&sf.ID, &sf.Name, &active, &createdAt); err != nil {
		return nil, err
	}
	sf.IsActive = intToBool(active)
	var err error
	if sf.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &sf, nil
}
