package queries

import (
	"context"
	"time"

	"arena-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletReadStore interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*WalletView, error)
	ListTransactions(ctx context.Context, walletID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*WalletTransactionView, error)
}

type WalletQueries interface {
	Balance(ctx context.Context, ownerID uuid.UUID) (*WalletView, error)
	ListTransactions(ctx context.Context, ownerID uuid.UUID, cursor *Cursor, limit int) ([]*WalletTransactionView, *Cursor, error)
}

type walletQueriesImpl struct {
	store WalletReadStore
}

func NewWalletQueries(store WalletReadStore) WalletQueries {
	return &walletQueriesImpl{store: store}
}

// Balance reports a zero wallet for owners that never received funds.
func (q *walletQueriesImpl) Balance(ctx context.Context, ownerID uuid.UUID) (*WalletView, error) {
	w, err := q.store.FindByOwner(ctx, ownerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &WalletView{OwnerID: ownerID, AvailableBalance: decimal.Zero, HeldAmount: decimal.Zero}, nil
		}
		return nil, err
	}
	return w, nil
}

func (q *walletQueriesImpl) ListTransactions(ctx context.Context, ownerID uuid.UUID, cursor *Cursor, limit int) ([]*WalletTransactionView, *Cursor, error) {
	limit = ValidateLimit(limit)
	afterAt, afterID, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	w, err := q.store.FindByOwner(ctx, ownerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return []*WalletTransactionView{}, nil, nil
		}
		return nil, nil, err
	}

	rows, err := q.store.ListTransactions(ctx, w.ID, afterAt, afterID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}

	items, next := page(rows, limit, func(r *WalletTransactionView) (time.Time, uuid.UUID) { return r.CreatedAt, r.ID })
	return items, next, nil
}
