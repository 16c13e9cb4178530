//go:build unit

package ledger_test

import (
	"context"
	"testing"
	"time"

	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/ledger"
	"arena-booking/internal/usecase/shared"
	"arena-booking/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAcquire(t *testing.T) {
	t.Run("payer wallet is created on first use", func(t *testing.T) {
		store := memuow.New()
		payer := uuid.New()

		err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			a, err := ledger.Acquire(ctx, tx, now, ledger.Payer(payer))
			if err != nil {
				return err
			}
			w, err := a.Wallet(payer)
			require.NoError(t, err)
			assert.True(t, w.Balance().IsZero())
			return nil
		})

		require.NoError(t, err)
		assert.True(t, store.HasWallet(payer))
	})

	t.Run("account wallet must already exist", func(t *testing.T) {
		store := memuow.New()
		operator := uuid.New()

		err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			_, err := ledger.Acquire(ctx, tx, now, ledger.Account(operator))
			return err
		})

		assert.True(t, errs.Is(err, ledger.ErrWalletNotFound), "got %v", err)
		assert.False(t, store.HasWallet(operator))
	})

	t.Run("party listed twice is locked once", func(t *testing.T) {
		store := memuow.New()
		owner := uuid.New()
		store.Fund(owner, dec("10"))

		err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			a, err := ledger.Acquire(ctx, tx, now, ledger.Payer(owner), ledger.Account(owner))
			if err != nil {
				return err
			}
			return a.Credit(ctx, owner, dec("5"))
		})

		require.NoError(t, err)
		balance, _ := store.Balances(owner)
		assert.Equal(t, "15", balance.String())
	})

	t.Run("unacquired owner is rejected", func(t *testing.T) {
		store := memuow.New()
		owner, stranger := uuid.New(), uuid.New()
		store.Fund(owner, dec("10"))
		store.Fund(stranger, dec("10"))

		err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			a, err := ledger.Acquire(ctx, tx, now, ledger.Account(owner))
			if err != nil {
				return err
			}
			return a.Credit(ctx, stranger, dec("1"))
		})

		assert.True(t, errs.Is(err, ledger.ErrWalletNotAcquired), "got %v", err)
	})
}

func TestAccounts_Primitives(t *testing.T) {
	type step struct {
		op     func(a *ledger.Accounts, ctx context.Context, owner uuid.UUID, amount decimal.Decimal) error
		amount string
	}
	lock := (*ledger.Accounts).Lock
	unlock := (*ledger.Accounts).Unlock
	addHeld := (*ledger.Accounts).AddHeld
	removeHeld := (*ledger.Accounts).RemoveHeld
	release := (*ledger.Accounts).Release
	credit := (*ledger.Accounts).Credit

	tests := []struct {
		name        string
		balance     string
		steps       []step
		wantBalance string
		wantHeld    string
		wantErr     error
	}{
		{
			name:        "lock moves balance into held",
			balance:     "100",
			steps:       []step{{lock, "40"}},
			wantBalance: "60",
			wantHeld:    "40",
		},
		{
			name:        "lock then release restores balance",
			balance:     "100",
			steps:       []step{{lock, "40"}, {release, "40"}},
			wantBalance: "100",
			wantHeld:    "0",
		},
		{
			name:        "lock then unlock drops the funds",
			balance:     "100",
			steps:       []step{{lock, "40"}, {unlock, "40"}},
			wantBalance: "60",
			wantHeld:    "0",
		},
		{
			name:        "add held then remove held",
			balance:     "0",
			steps:       []step{{addHeld, "18"}, {removeHeld, "18"}},
			wantBalance: "0",
			wantHeld:    "0",
		},
		{
			name:        "credit increases balance",
			balance:     "5",
			steps:       []step{{credit, "2.50"}},
			wantBalance: "7.5",
			wantHeld:    "0",
		},
		{
			name:    "lock beyond balance",
			balance: "10",
			steps:   []step{{lock, "10.01"}},
			wantErr: wallet.ErrInsufficientFunds,
		},
		{
			name:    "release beyond held",
			balance: "10",
			steps:   []step{{lock, "5"}, {release, "6"}},
			wantErr: wallet.ErrInsufficientHeld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memuow.New()
			owner := uuid.New()
			store.Fund(owner, dec(tt.balance))

			err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
				a, err := ledger.Acquire(ctx, tx, now, ledger.Account(owner))
				if err != nil {
					return err
				}
				for _, s := range tt.steps {
					if err := s.op(a, ctx, owner, dec(s.amount)); err != nil {
						return err
					}
				}
				return nil
			})

			balance, held := store.Balances(owner)
			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				// the failed transaction leaves committed state untouched
				assert.Equal(t, dec(tt.balance).String(), balance.String())
				assert.True(t, held.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.wantBalance).Equal(balance), "balance %s", balance)
			assert.True(t, dec(tt.wantHeld).Equal(held), "held %s", held)
		})
	}
}

func TestAccounts_Record(t *testing.T) {
	store := memuow.New()
	owner := uuid.New()
	ref := uuid.New()

	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		a, err := ledger.Acquire(ctx, tx, now, ledger.Payer(owner))
		if err != nil {
			return err
		}
		_, err = a.Record(ctx, owner, ledger.Entry{
			Amount:      dec("200"),
			Type:        wallet.TypePayment,
			Stage:       wallet.StageHold,
			ReferenceID: &ref,
			Note:        "reservation hold",
		})
		return err
	})
	require.NoError(t, err)

	txs := store.Transactions(owner)
	require.Len(t, txs, 1)
	assert.Equal(t, wallet.TypePayment, txs[0].Type())
	assert.Equal(t, wallet.StageHold, txs[0].Stage())
	assert.Equal(t, ref, *txs[0].ReferenceID())
	assert.True(t, dec("200").Equal(txs[0].Amount()))
	assert.Equal(t, now, txs[0].CreatedAt())
}

func TestAccounts_RecordRejectsZeroAmount(t *testing.T) {
	store := memuow.New()
	owner := uuid.New()

	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		a, err := ledger.Acquire(ctx, tx, now, ledger.Payer(owner))
		if err != nil {
			return err
		}
		_, err = a.Record(ctx, owner, ledger.Entry{Amount: decimal.Zero, Type: wallet.TypeFee, Stage: wallet.StageSettled})
		return err
	})

	assert.True(t, errs.Is(err, money.ErrInvalidAmount), "got %v", err)
	assert.False(t, store.HasWallet(owner))
}
