//go:build unit

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// nopDBTX satisfies sqlc.DBTX; the mocked queries never touch it.
type nopDBTX struct{}

func (nopDBTX) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (nopDBTX) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (nopDBTX) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func pgconvTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
