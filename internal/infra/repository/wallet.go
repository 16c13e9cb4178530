package repository

import (
	"context"
	"time"

	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/infra"
	"arena-booking/internal/infra/repository/converter"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type WalletQueries interface {
	CreateWalletIfMissing(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateWalletIfMissingParams) error
	GetWalletByOwnerForUpdate(ctx context.Context, db sqlc.DBTX, ownerID uuid.UUID) (sqlc.Wallets, error)
	UpdateWalletBalances(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateWalletBalancesParams) error
}

type WalletRepository struct {
	queries WalletQueries
}

func NewWalletRepository(queries WalletQueries) *WalletRepository {
	return &WalletRepository{queries: queries}
}

// EnsureExists creates an empty wallet for ownerID unless one is already there.
func (r *WalletRepository) EnsureExists(ctx context.Context, tx sqlc.DBTX, ownerID uuid.UUID, now time.Time) error {
	err := r.queries.CreateWalletIfMissing(ctx, tx, sqlc.CreateWalletIfMissingParams{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create wallet", err)
	}
	return nil
}

func (r *WalletRepository) FindByOwnerForUpdate(ctx context.Context, tx sqlc.DBTX, ownerID uuid.UUID) (*wallet.Wallet, error) {
	row, err := r.queries.GetWalletByOwnerForUpdate(ctx, tx, ownerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock wallet", err)
	}

	w, err := converter.WalletFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored wallet is invalid", err, infra.KindDBFailure)
	}
	return w, nil
}

func (r *WalletRepository) Save(ctx context.Context, tx sqlc.DBTX, w *wallet.Wallet) error {
	err := r.queries.UpdateWalletBalances(ctx, tx, sqlc.UpdateWalletBalancesParams{
		Balance:    w.Balance(),
		HeldAmount: w.Held(),
		UpdatedAt:  pgconv.TimeToPgtype(w.UpdatedAt()),
		ID:         w.ID(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to save wallet balances", err)
	}
	return nil
}
