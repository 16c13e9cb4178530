package wallet

import (
	"time"

	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidType  = errs.New("invalid transaction type")
	ErrInvalidStage = errs.New("invalid transaction stage")
)

type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
	TypePayment    Type = "payment"
	TypeRefund     Type = "refund"
	TypeFee        Type = "fee"
	TypeManual     Type = "manual"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypePayment, TypeRefund, TypeFee, TypeManual:
		return true
	default:
		return false
	}
}

type Stage string

const (
	StageInstant   Stage = "instant"
	StageHold      Stage = "hold"
	StagePending   Stage = "pending"
	StageSettled   Stage = "settled"
	StageRefund    Stage = "refund"
	StageProcessed Stage = "processed"
	StageRejected  Stage = "rejected"
	StageCanceled  Stage = "canceled"
)

func (s Stage) String() string { return string(s) }

func (s Stage) IsValid() bool {
	switch s {
	case StageInstant, StageHold, StagePending, StageSettled, StageRefund,
		StageProcessed, StageRejected, StageCanceled:
		return true
	default:
		return false
	}
}

// IsOpen reports whether an entry in this stage still waits to be consumed.
// At most one open entry exists per reference id.
func (s Stage) IsOpen() bool {
	return s == StageHold || s == StagePending
}

func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if !stage.IsValid() {
		return "", errs.Wrapf(ErrInvalidStage, "stage %q", s)
	}
	return stage, nil
}

// Transaction is an immutable ledger entry. Amount is always positive; the
// direction follows from Type.
type Transaction struct {
	id          uuid.UUID
	walletID    uuid.UUID
	amount      decimal.Decimal
	txType      Type
	stage       Stage
	referenceID *uuid.UUID
	externalRef *string
	note        string
	createdAt   time.Time
}

type TransactionParams struct {
	WalletID    uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Stage       Stage
	ReferenceID *uuid.UUID
	ExternalRef *string
	Note        string
}

func NewTransaction(p TransactionParams, now time.Time) (*Transaction, error) {
	if err := money.ValidatePositive(p.Amount); err != nil {
		return nil, err
	}
	if !p.Type.IsValid() {
		return nil, errs.Wrapf(ErrInvalidType, "type %q", p.Type)
	}
	if !p.Stage.IsValid() {
		return nil, errs.Wrapf(ErrInvalidStage, "stage %q", p.Stage)
	}
	return &Transaction{
		id:          uuid.New(),
		walletID:    p.WalletID,
		amount:      p.Amount,
		txType:      p.Type,
		stage:       p.Stage,
		referenceID: p.ReferenceID,
		externalRef: p.ExternalRef,
		note:        p.Note,
		createdAt:   now,
	}, nil
}

func ReconstructTransaction(id uuid.UUID, p TransactionParams, createdAt time.Time) *Transaction {
	return &Transaction{
		id:          id,
		walletID:    p.WalletID,
		amount:      p.Amount,
		txType:      p.Type,
		stage:       p.Stage,
		referenceID: p.ReferenceID,
		externalRef: p.ExternalRef,
		note:        p.Note,
		createdAt:   createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) WalletID() uuid.UUID      { return t.walletID }
func (t *Transaction) Amount() decimal.Decimal  { return t.amount }
func (t *Transaction) Type() Type               { return t.txType }
func (t *Transaction) Stage() Stage             { return t.stage }
func (t *Transaction) ReferenceID() *uuid.UUID  { return t.referenceID }
func (t *Transaction) ExternalRef() *string     { return t.externalRef }
func (t *Transaction) Note() string             { return t.note }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
func (t *Transaction) IsOpen() bool             { return t.stage.IsOpen() }
