//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"arena-booking/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a conn and a tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ArenaFixture is an arena with its courts, as created by CreateArena.
type ArenaFixture struct {
	ID         uuid.UUID
	OperatorID uuid.UUID
	Courts     []uuid.UUID
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, strings.Split(email, "@")[0], role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// CreateArena inserts an active UTC arena open 08:00-22:00 with the given number of courts.
func CreateArena(t *testing.T, db DBLike, operatorID uuid.UUID, pricePerHour string, courts int) ArenaFixture {
	t.Helper()
	ctx := context.Background()

	a := ArenaFixture{ID: uuid.New(), OperatorID: operatorID}
	_, err := db.Exec(ctx, `INSERT INTO arenas (id, operator_id, name, price_per_hour, open_hour, close_hour, time_zone, is_active)
		VALUES ($1, $2, $3, $4, 8, 22, 'UTC', true)`,
		a.ID, operatorID, "Arena "+a.ID.String()[:8], decimal.RequireFromString(pricePerHour))
	require.NoError(t, err)

	for i := 0; i < courts; i++ {
		a.Courts = append(a.Courts, CreateCourt(t, db, a.ID, fmt.Sprintf("Court %d", i+1)))
	}
	return a
}

func CreateCourt(t *testing.T, db DBLike, arenaID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO courts (id, arena_id, name, is_active) VALUES ($1, $2, $3, true)", id, arenaID, name)
	require.NoError(t, err)
	return id
}

func CreateExtra(t *testing.T, db DBLike, arenaID uuid.UUID, name, price string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO arena_extras (id, arena_id, name, price, is_active) VALUES ($1, $2, $3, $4, true)",
		id, arenaID, name, decimal.RequireFromString(price))
	require.NoError(t, err)
	return id
}

// FundWallet sets the owner's available balance, creating the wallet when missing.
func FundWallet(t *testing.T, db DBLike, ownerID uuid.UUID, balance string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `INSERT INTO wallets (id, owner_id, balance, held_amount) VALUES ($1, $2, $3, 0)
		ON CONFLICT (owner_id) DO UPDATE SET balance = EXCLUDED.balance, updated_at = now()`,
		uuid.New(), ownerID, decimal.RequireFromString(balance))
	require.NoError(t, err)
}

// WalletAmounts reads balance and held amount for ownerID.
func WalletAmounts(t *testing.T, db DBLike, ownerID uuid.UUID) (decimal.Decimal, decimal.Decimal) {
	t.Helper()

	var balance, held decimal.Decimal
	err := db.QueryRow(context.Background(), "SELECT balance, held_amount FROM wallets WHERE owner_id = $1", ownerID).Scan(&balance, &held)
	require.NoError(t, err)
	return balance, held
}

// SeedReferenceData inserts the platform account and its wallet.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()
	platformID := config.NewTestConfig().Ledger.PlatformAccountID

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, name, role) VALUES ($1, 'platform@arena.local', 'Platform', 'admin')
		ON CONFLICT (id) DO NOTHING;
	`, platformID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO wallets (id, owner_id, balance, held_amount) VALUES (gen_random_uuid(), $1, 0, 0)
		ON CONFLICT (owner_id) DO NOTHING;
	`, platformID)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
