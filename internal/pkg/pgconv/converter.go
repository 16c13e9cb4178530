// Package pgconv maps between domain values and the pgtype wrappers the
// generated queries use for nullable columns. Money columns are already
// decimal.Decimal in the generated models and need no conversion.
package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// IsNoRows matches the not-found error of either driver API.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

func optional[T any](v T, valid bool) *T {
	if !valid {
		return nil
	}
	return &v
}

func deref[T any](p *T) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	return *p, true
}

// Reading

func UUIDPtrFromPgtype(v pgtype.UUID) *uuid.UUID {
	return optional(uuid.UUID(v.Bytes), v.Valid)
}

func StringPtrFromPgtype(v pgtype.Text) *string {
	return optional(v.String, v.Valid)
}

// TimeFromPgtype is for NOT NULL columns; a null reads as the zero time.
func TimeFromPgtype(v pgtype.Timestamptz) time.Time {
	return v.Time
}

func TimePtrFromPgtype(v pgtype.Timestamptz) *time.Time {
	return optional(v.Time, v.Valid)
}

// DateFromPgtype returns midnight UTC of the stored calendar day.
func DateFromPgtype(v pgtype.Date) time.Time {
	return v.Time
}

// Writing

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	v, ok := deref(id)
	return pgtype.UUID{Bytes: v, Valid: ok}
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func StringPtrToPgtype(s *string) pgtype.Text {
	v, ok := deref(s)
	return pgtype.Text{String: v, Valid: ok}
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	v, ok := deref(t)
	return pgtype.Timestamptz{Time: v, Valid: ok}
}

// DateToPgtype keeps only the calendar day of t, in t's own location.
func DateToPgtype(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}
