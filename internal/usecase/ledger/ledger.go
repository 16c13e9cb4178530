// Package ledger applies wallet primitives inside a caller's transaction.
// Every wallet it touches is locked with FOR UPDATE before the first change
// and persisted right after each primitive.
package ledger

import (
	"context"
	"time"

	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/infra"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound    = errs.New("wallet not found")
	ErrWalletNotAcquired = errs.New("wallet was not acquired in this transaction")
)

// Party names a wallet to lock. Payers and deposit targets get an empty
// wallet on first use; operator and platform wallets are provisioned ahead.
type Party struct {
	OwnerID         uuid.UUID
	CreateIfMissing bool
}

func Payer(ownerID uuid.UUID) Party { return Party{OwnerID: ownerID, CreateIfMissing: true} }

func Account(ownerID uuid.UUID) Party { return Party{OwnerID: ownerID} }

// Accounts is the set of wallets locked by one transaction.
type Accounts struct {
	tx      shared.Tx
	now     time.Time
	wallets map[uuid.UUID]*wallet.Wallet
}

// Acquire locks the parties' wallets in the order given. Callers pass payer,
// operator, platform so concurrent transactions never lock in opposite order.
// A party listed twice is locked once.
func Acquire(ctx context.Context, tx shared.Tx, now time.Time, parties ...Party) (*Accounts, error) {
	a := &Accounts{tx: tx, now: now, wallets: make(map[uuid.UUID]*wallet.Wallet, len(parties))}
	for _, p := range parties {
		if _, ok := a.wallets[p.OwnerID]; ok {
			continue
		}
		if p.CreateIfMissing {
			if err := tx.Wallets().EnsureExists(ctx, tx.DB(), p.OwnerID, now); err != nil {
				return nil, err
			}
		}
		w, err := tx.Wallets().FindByOwnerForUpdate(ctx, tx.DB(), p.OwnerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Wrapf(ErrWalletNotFound, "owner %s", p.OwnerID)
			}
			return nil, err
		}
		a.wallets[p.OwnerID] = w
	}
	return a, nil
}

func (a *Accounts) Wallet(ownerID uuid.UUID) (*wallet.Wallet, error) {
	w, ok := a.wallets[ownerID]
	if !ok {
		return nil, errs.Wrapf(ErrWalletNotAcquired, "owner %s", ownerID)
	}
	return w, nil
}

func (a *Accounts) Lock(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return a.apply(ctx, ownerID, amount, (*wallet.Wallet).Lock)
}

func (a *Accounts) Unlock(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return a.apply(ctx, ownerID, amount, (*wallet.Wallet).Unlock)
}

func (a *Accounts) AddHeld(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return a.apply(ctx, ownerID, amount, (*wallet.Wallet).AddHeld)
}

func (a *Accounts) RemoveHeld(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return a.apply(ctx, ownerID, amount, (*wallet.Wallet).RemoveHeld)
}

func (a *Accounts) Release(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return a.apply(ctx, ownerID, amount, (*wallet.Wallet).Release)
}

func (a *Accounts) Credit(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return a.apply(ctx, ownerID, amount, (*wallet.Wallet).Credit)
}

func (a *Accounts) apply(
	ctx context.Context,
	ownerID uuid.UUID,
	amount decimal.Decimal,
	op func(*wallet.Wallet, decimal.Decimal) error,
) error {
	w, err := a.Wallet(ownerID)
	if err != nil {
		return err
	}
	if err := op(w, amount); err != nil {
		return errs.Wrapf(err, "wallet of %s", ownerID)
	}
	w.Touch(a.now)
	return a.tx.Wallets().Save(ctx, a.tx.DB(), w)
}

type Entry struct {
	Amount      decimal.Decimal
	Type        wallet.Type
	Stage       wallet.Stage
	ReferenceID *uuid.UUID
	ExternalRef *string
	Note        string
}

// Record appends an immutable entry to the owner's wallet log.
func (a *Accounts) Record(ctx context.Context, ownerID uuid.UUID, e Entry) (*wallet.Transaction, error) {
	w, err := a.Wallet(ownerID)
	if err != nil {
		return nil, err
	}
	t, err := wallet.NewTransaction(wallet.TransactionParams{
		WalletID:    w.ID(),
		Amount:      e.Amount,
		Type:        e.Type,
		Stage:       e.Stage,
		ReferenceID: e.ReferenceID,
		ExternalRef: e.ExternalRef,
		Note:        e.Note,
	}, a.now)
	if err != nil {
		return nil, err
	}
	if err := a.tx.WalletTransactions().Create(ctx, a.tx.DB(), t); err != nil {
		return nil, err
	}
	return t, nil
}
