package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/horizon/internal/db"
)

// FailOnNthExecUoW wraps a real UnitOfWork and makes the FailOn'th
// ExecContext inside each transaction return Err. Counting starts at 1 and
// reads are not counted, so tests can break a clone at a chosen write.
type FailOnNthExecUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error
}

// NewFailingUoW fails the nth write of every transaction on database.
func NewFailingUoW(database *sql.DB, n int32, err error) *FailOnNthExecUoW {
	return &FailOnNthExecUoW{Inner: NewTestUoW(database), FailOn: n, Err: err}
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

// countingTx is used by one goroutine per transaction.
type countingTx struct {
	db.DBTX
	execs  int32
	failOn int32
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.execs++
	if c.execs == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
