package converter

import (
	"arena-booking/internal/domain/wallet"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func WalletFromRow(row sqlc.Wallets) (*wallet.Wallet, error) {
	return wallet.Reconstruct(
		row.ID,
		row.OwnerID,
		row.Balance,
		row.HeldAmount,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func TransactionToCreateParams(t *wallet.Transaction) sqlc.CreateWalletTransactionParams {
	return sqlc.CreateWalletTransactionParams{
		ID:          t.ID(),
		WalletID:    t.WalletID(),
		Amount:      t.Amount(),
		Type:        t.Type().String(),
		Stage:       t.Stage().String(),
		ReferenceID: pgconv.UUIDPtrToPgtype(t.ReferenceID()),
		ExternalRef: pgconv.StringPtrToPgtype(t.ExternalRef()),
		Note:        t.Note(),
		CreatedAt:   pgconv.TimeToPgtype(t.CreatedAt()),
	}
}

func TransactionFromRow(row sqlc.WalletTransactions) *wallet.Transaction {
	return transactionFromFields(row.ID, row.WalletID, row)
}

func TransactionFromLockedRow(row sqlc.GetWalletTransactionForUpdateRow) *wallet.Transaction {
	return transactionFromFields(row.ID, row.WalletID, sqlc.WalletTransactions{
		Amount:      row.Amount,
		Type:        row.Type,
		Stage:       row.Stage,
		ReferenceID: row.ReferenceID,
		ExternalRef: row.ExternalRef,
		Note:        row.Note,
		CreatedAt:   row.CreatedAt,
	})
}

func transactionFromFields(id, walletID uuid.UUID, row sqlc.WalletTransactions) *wallet.Transaction {
	return wallet.ReconstructTransaction(id, wallet.TransactionParams{
		WalletID:    walletID,
		Amount:      row.Amount,
		Type:        wallet.Type(row.Type),
		Stage:       wallet.Stage(row.Stage),
		ReferenceID: pgconv.UUIDPtrFromPgtype(row.ReferenceID),
		ExternalRef: pgconv.StringPtrFromPgtype(row.ExternalRef),
		Note:        row.Note,
	}, pgconv.TimeFromPgtype(row.CreatedAt))
}
