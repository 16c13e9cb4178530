package repository

import (
	"context"

	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/infra"
	"arena-booking/internal/infra/repository/converter"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type WalletTransactionQueries interface {
	CreateWalletTransaction(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateWalletTransactionParams) error
	GetOpenTransactionByReferenceForUpdate(ctx context.Context, db sqlc.DBTX, referenceID pgtype.UUID) (sqlc.WalletTransactions, error)
	GetWalletTransactionForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetWalletTransactionForUpdateRow, error)
	GetWalletTransactionByExternalRef(ctx context.Context, db sqlc.DBTX, externalRef pgtype.Text) (sqlc.WalletTransactions, error)
	CloseOpenWalletTransaction(ctx context.Context, db sqlc.DBTX, arg sqlc.CloseOpenWalletTransactionParams) (int64, error)
}

type WalletTransactionRepository struct {
	queries WalletTransactionQueries
}

func NewWalletTransactionRepository(queries WalletTransactionQueries) *WalletTransactionRepository {
	return &WalletTransactionRepository{queries: queries}
}

func (r *WalletTransactionRepository) Create(ctx context.Context, tx sqlc.DBTX, t *wallet.Transaction) error {
	if err := r.queries.CreateWalletTransaction(ctx, tx, converter.TransactionToCreateParams(t)); err != nil {
		return infra.WrapRepoErr("failed to create wallet transaction", err)
	}
	return nil
}

func (r *WalletTransactionRepository) FindOpenByReferenceForUpdate(ctx context.Context, tx sqlc.DBTX, referenceID uuid.UUID) (*wallet.Transaction, error) {
	row, err := r.queries.GetOpenTransactionByReferenceForUpdate(ctx, tx, pgconv.UUIDToPgtype(referenceID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("open wallet transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock wallet transaction", err)
	}
	return converter.TransactionFromRow(row), nil
}

func (r *WalletTransactionRepository) FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*wallet.Transaction, uuid.UUID, error) {
	row, err := r.queries.GetWalletTransactionForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, uuid.Nil, infra.WrapRepoErr("wallet transaction not found", err, infra.KindNotFound)
		}
		return nil, uuid.Nil, infra.WrapRepoErr("failed to lock wallet transaction", err)
	}
	return converter.TransactionFromLockedRow(row), row.OwnerID, nil
}

func (r *WalletTransactionRepository) FindByExternalRef(ctx context.Context, tx sqlc.DBTX, externalRef string) (*wallet.Transaction, error) {
	row, err := r.queries.GetWalletTransactionByExternalRef(ctx, tx, pgconv.StringToPgtype(externalRef))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("wallet transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet transaction by external ref", err)
	}
	return converter.TransactionFromRow(row), nil
}

// Close fails with KindNotFound when the entry is no longer open.
func (r *WalletTransactionRepository) Close(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, stage wallet.Stage) error {
	n, err := r.queries.CloseOpenWalletTransaction(ctx, tx, sqlc.CloseOpenWalletTransactionParams{
		Stage: stage.String(),
		ID:    id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to close wallet transaction", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("wallet transaction is not open", nil, infra.KindNotFound)
	}
	return nil
}
