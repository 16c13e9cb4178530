package wallet

import (
	"time"

	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errs.New("insufficient funds")
	ErrInsufficientHeld  = errs.New("insufficient held amount")
	ErrNegativeBalance   = errs.New("wallet balance cannot be negative")
)

// Wallet is one owner's spendable balance plus the amount held for pending
// settlements. Both buckets stay non-negative after every operation.
type Wallet struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	balance   decimal.Decimal
	held      decimal.Decimal
	createdAt time.Time
	updatedAt time.Time
}

func New(ownerID uuid.UUID, now time.Time) *Wallet {
	return &Wallet{
		id:        uuid.New(),
		ownerID:   ownerID,
		balance:   decimal.Zero,
		held:      decimal.Zero,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(id, ownerID uuid.UUID, balance, held decimal.Decimal, createdAt, updatedAt time.Time) (*Wallet, error) {
	if balance.IsNegative() || held.IsNegative() {
		return nil, errs.Wrapf(ErrNegativeBalance, "wallet %s: balance=%s held=%s", id, balance, held)
	}
	return &Wallet{
		id:        id,
		ownerID:   ownerID,
		balance:   balance,
		held:      held,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Lock moves amount from balance into the held bucket.
func (w *Wallet) Lock(amount decimal.Decimal) error {
	if err := money.ValidatePositive(amount); err != nil {
		return err
	}
	if w.balance.LessThan(amount) {
		return errs.Wrapf(ErrInsufficientFunds, "balance %s < %s", money.String(w.balance), money.String(amount))
	}
	w.balance = w.balance.Sub(amount)
	w.held = w.held.Add(amount)
	return nil
}

// Unlock drops amount from the held bucket; the funds leave this wallet.
func (w *Wallet) Unlock(amount decimal.Decimal) error {
	return w.subHeld(amount)
}

func (w *Wallet) AddHeld(amount decimal.Decimal) error {
	if err := money.ValidatePositive(amount); err != nil {
		return err
	}
	w.held = w.held.Add(amount)
	return nil
}

func (w *Wallet) RemoveHeld(amount decimal.Decimal) error {
	return w.subHeld(amount)
}

// Release makes held funds spendable again.
func (w *Wallet) Release(amount decimal.Decimal) error {
	if err := w.subHeld(amount); err != nil {
		return err
	}
	w.balance = w.balance.Add(amount)
	return nil
}

func (w *Wallet) Credit(amount decimal.Decimal) error {
	if err := money.ValidatePositive(amount); err != nil {
		return err
	}
	w.balance = w.balance.Add(amount)
	return nil
}

func (w *Wallet) CanCover(amount decimal.Decimal) bool {
	return w.balance.GreaterThanOrEqual(amount)
}

func (w *Wallet) subHeld(amount decimal.Decimal) error {
	if err := money.ValidatePositive(amount); err != nil {
		return err
	}
	if w.held.LessThan(amount) {
		return errs.Wrapf(ErrInsufficientHeld, "held %s < %s", money.String(w.held), money.String(amount))
	}
	w.held = w.held.Sub(amount)
	return nil
}

func (w *Wallet) Touch(now time.Time) { w.updatedAt = now }

func (w *Wallet) ID() uuid.UUID            { return w.id }
func (w *Wallet) OwnerID() uuid.UUID       { return w.ownerID }
func (w *Wallet) Balance() decimal.Decimal { return w.balance }
func (w *Wallet) Held() decimal.Decimal    { return w.held }
func (w *Wallet) CreatedAt() time.Time     { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time     { return w.updatedAt }
