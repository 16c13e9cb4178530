package readstore

import (
	"context"
	"time"

	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"
	"arena-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type WalletReadQueries interface {
	GetWalletByOwner(ctx context.Context, db sqlc.DBTX, ownerID uuid.UUID) (sqlc.Wallets, error)
	ListWalletTransactions(ctx context.Context, db sqlc.DBTX, arg sqlc.ListWalletTransactionsParams) ([]sqlc.WalletTransactions, error)
}

type WalletReadStore struct {
	queries WalletReadQueries
	db      sqlc.DBTX
}

func NewWalletReadStore(queries WalletReadQueries, db sqlc.DBTX) *WalletReadStore {
	return &WalletReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *WalletReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*queries.WalletView, error) {
	row, err := r.queries.GetWalletByOwner(ctx, r.db, ownerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet", err)
	}

	return &queries.WalletView{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		AvailableBalance: row.Balance,
		HeldAmount:       row.HeldAmount,
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func (r *WalletReadStore) ListTransactions(ctx context.Context, walletID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.WalletTransactionView, error) {
	rows, err := r.queries.ListWalletTransactions(ctx, r.db, sqlc.ListWalletTransactionsParams{
		WalletID:        walletID,
		CursorCreatedAt: pgconv.TimePtrToPgtype(afterCreatedAt),
		CursorID:        pgconv.UUIDPtrToPgtype(afterID),
		PageSize:        limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list wallet transactions", err)
	}

	result := make([]*queries.WalletTransactionView, len(rows))
	for i, row := range rows {
		result[i] = &queries.WalletTransactionView{
			ID:          row.ID,
			Amount:      row.Amount,
			Type:        row.Type,
			Stage:       row.Stage,
			ReferenceID: pgconv.UUIDPtrFromPgtype(row.ReferenceID),
			ExternalRef: pgconv.StringPtrFromPgtype(row.ExternalRef),
			Note:        row.Note,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return result, nil
}
