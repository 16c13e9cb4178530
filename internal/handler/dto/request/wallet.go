package request

import (
	"arena-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// Amounts travel as decimal strings so no float ever touches money.
type WithdrawalRequest struct {
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
}

func (r WithdrawalRequest) ToInput() commands.WithdrawalInput {
	return commands.WithdrawalInput{Amount: r.Amount, Note: r.Note}
}

type DepositRequest struct {
	UserID      uuid.UUID `json:"userId" binding:"required"`
	Amount      string    `json:"amount" binding:"required"`
	ExternalRef string    `json:"externalRef" binding:"required,max=255"`
	Note        string    `json:"note" binding:"max=500"`
}

func (r DepositRequest) ToInput() commands.DepositInput {
	return commands.DepositInput{
		UserID:      r.UserID,
		Amount:      r.Amount,
		ExternalRef: r.ExternalRef,
		Note:        r.Note,
	}
}

type ManualTransactionRequest struct {
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
	Amount        string    `json:"amount" binding:"required"`
	Stage         string    `json:"stage" binding:"required,oneof=processed rejected canceled"`
	Note          string    `json:"note" binding:"max=500"`
}

func (r ManualTransactionRequest) ToInput() commands.ManualTransactionInput {
	return commands.ManualTransactionInput{
		ReservationID: r.ReservationID,
		Amount:        r.Amount,
		Stage:         r.Stage,
		Note:          r.Note,
	}
}

type SettlementJobQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
