package commands

import (
	"context"
	"strings"

	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/infra"
	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/ledger"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound           = errs.New("user not found")
	ErrExternalRefRequired    = errs.New("external reference is required")
	ErrExternalRefConflict    = errs.New("external reference already used for another deposit")
	ErrWithdrawalNotFound     = errs.New("withdrawal not found")
	ErrWithdrawalNotPending   = errs.New("withdrawal is not pending")
	ErrInvalidManualStage     = errs.New("manual transactions accept processed, rejected or canceled")
	ErrNotReservationOperator = errs.New("reservation belongs to another operator")
)

type DepositInput struct {
	UserID      uuid.UUID
	Amount      string
	ExternalRef string
	Note        string
}

type DepositResult struct {
	Transaction *queries.WalletTransactionView
	IsReplayed  bool
}

type WithdrawalInput struct {
	Amount string
	Note   string
}

type ManualTransactionInput struct {
	ReservationID uuid.UUID
	Amount        string
	Stage         string
	Note          string
}

type WalletCommands interface {
	// CreditExternalFunds books money received by the payment gateway. A
	// repeated externalRef for the same wallet returns the original entry.
	CreditExternalFunds(ctx context.Context, in DepositInput) (*DepositResult, error)
	RequestWithdrawal(ctx context.Context, ownerID uuid.UUID, in WithdrawalInput) (*queries.WalletTransactionView, error)
	ApproveWithdrawal(ctx context.Context, transactionID uuid.UUID) error
	RejectWithdrawal(ctx context.Context, transactionID uuid.UUID) error
	RecordManualTransaction(ctx context.Context, operatorID uuid.UUID, in ManualTransactionInput) (*queries.WalletTransactionView, error)
}

type walletCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewWalletCommands(uow shared.UnitOfWork, clk clock.Clock) WalletCommands {
	return &walletCommandsImpl{uow: uow, clock: clk}
}

func (c *walletCommandsImpl) CreditExternalFunds(ctx context.Context, in DepositInput) (*DepositResult, error) {
	amount, err := parsePositive(in.Amount)
	if err != nil {
		return nil, err
	}
	ref := strings.TrimSpace(in.ExternalRef)
	if ref == "" {
		return nil, ErrExternalRefRequired
	}

	var result *DepositResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		if _, err := tx.Reads().UserByID(ctx, in.UserID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(ErrUserNotFound, "user %s", in.UserID)
			}
			return err
		}

		accounts, err := ledger.Acquire(ctx, tx, now, ledger.Payer(in.UserID))
		if err != nil {
			return err
		}
		w, err := accounts.Wallet(in.UserID)
		if err != nil {
			return err
		}

		existing, err := tx.WalletTransactions().FindByExternalRef(ctx, tx.DB(), ref)
		switch {
		case err == nil:
			if existing.WalletID() != w.ID() || existing.Type() != wallet.TypeDeposit || !existing.Amount().Equal(amount) {
				return errs.Wrapf(ErrExternalRefConflict, "external ref %q", ref)
			}
			result = &DepositResult{Transaction: transactionView(existing), IsReplayed: true}
			return nil
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		if err := accounts.Credit(ctx, in.UserID, amount); err != nil {
			return err
		}
		t, err := accounts.Record(ctx, in.UserID, ledger.Entry{
			Amount:      amount,
			Type:        wallet.TypeDeposit,
			Stage:       wallet.StageInstant,
			ExternalRef: &ref,
			Note:        in.Note,
		})
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrExternalRefConflict)
			}
			return err
		}
		result = &DepositResult{Transaction: transactionView(t)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *walletCommandsImpl) RequestWithdrawal(ctx context.Context, ownerID uuid.UUID, in WithdrawalInput) (*queries.WalletTransactionView, error) {
	amount, err := parsePositive(in.Amount)
	if err != nil {
		return nil, err
	}

	var view *queries.WalletTransactionView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		accounts, err := ledger.Acquire(ctx, tx, c.clock.Now(), ledger.Payer(ownerID))
		if err != nil {
			return err
		}
		if err := accounts.Lock(ctx, ownerID, amount); err != nil {
			return err
		}
		t, err := accounts.Record(ctx, ownerID, ledger.Entry{
			Amount: amount,
			Type:   wallet.TypeWithdrawal,
			Stage:  wallet.StagePending,
			Note:   in.Note,
		})
		if err != nil {
			return err
		}
		view = transactionView(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ApproveWithdrawal pays the held funds out of the system.
func (c *walletCommandsImpl) ApproveWithdrawal(ctx context.Context, transactionID uuid.UUID) error {
	return c.closeWithdrawal(ctx, transactionID, wallet.StageProcessed, (*ledger.Accounts).Unlock)
}

// RejectWithdrawal returns the held funds to the owner's balance.
func (c *walletCommandsImpl) RejectWithdrawal(ctx context.Context, transactionID uuid.UUID) error {
	return c.closeWithdrawal(ctx, transactionID, wallet.StageRejected, (*ledger.Accounts).Release)
}

func (c *walletCommandsImpl) closeWithdrawal(
	ctx context.Context,
	transactionID uuid.UUID,
	stage wallet.Stage,
	move func(*ledger.Accounts, context.Context, uuid.UUID, decimal.Decimal) error,
) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, ownerID, err := tx.WalletTransactions().FindForUpdate(ctx, tx.DB(), transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(ErrWithdrawalNotFound, "transaction %s", transactionID)
			}
			return err
		}
		if t.Type() != wallet.TypeWithdrawal {
			return errs.Wrapf(ErrWithdrawalNotFound, "transaction %s is a %s", transactionID, t.Type())
		}
		if t.Stage() != wallet.StagePending {
			return errs.Wrapf(ErrWithdrawalNotPending, "transaction %s is %s", transactionID, t.Stage())
		}

		accounts, err := ledger.Acquire(ctx, tx, c.clock.Now(), ledger.Account(ownerID))
		if err != nil {
			return err
		}
		if err := move(accounts, ctx, ownerID, t.Amount()); err != nil {
			return err
		}
		return tx.WalletTransactions().Close(ctx, tx.DB(), t.ID(), stage)
	})
}

// RecordManualTransaction appends an audit entry to the operator's wallet.
// Balances are not touched.
func (c *walletCommandsImpl) RecordManualTransaction(ctx context.Context, operatorID uuid.UUID, in ManualTransactionInput) (*queries.WalletTransactionView, error) {
	amount, err := parsePositive(in.Amount)
	if err != nil {
		return nil, err
	}
	stage := wallet.Stage(in.Stage)
	switch stage {
	case wallet.StageProcessed, wallet.StageRejected, wallet.StageCanceled:
	default:
		return nil, errs.Wrapf(ErrInvalidManualStage, "stage %q", in.Stage)
	}

	var view *queries.WalletTransactionView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, in.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return err
		}
		if snap.OperatorID != operatorID {
			return errs.Mark(errs.Wrapf(ErrNotReservationOperator, "reservation %s", in.ReservationID), reservation.ErrUnauthorized)
		}

		accounts, err := ledger.Acquire(ctx, tx, c.clock.Now(), ledger.Account(operatorID))
		if err != nil {
			return err
		}
		ref := in.ReservationID
		t, err := accounts.Record(ctx, operatorID, ledger.Entry{
			Amount:      amount,
			Type:        wallet.TypeManual,
			Stage:       stage,
			ReferenceID: &ref,
			Note:        in.Note,
		})
		if err != nil {
			return err
		}
		view = transactionView(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func parsePositive(s string) (decimal.Decimal, error) {
	amount, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if err := money.ValidatePositive(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func transactionView(t *wallet.Transaction) *queries.WalletTransactionView {
	return &queries.WalletTransactionView{
		ID:          t.ID(),
		Amount:      t.Amount(),
		Type:        t.Type().String(),
		Stage:       t.Stage().String(),
		ReferenceID: t.ReferenceID(),
		ExternalRef: t.ExternalRef(),
		Note:        t.Note(),
		CreatedAt:   t.CreatedAt(),
	}
}
