package response

import (
	"time"

	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type WalletResponse struct {
	OwnerID          uuid.UUID `json:"ownerId"`
	AvailableBalance string    `json:"availableBalance"`
	HeldAmount       string    `json:"heldAmount"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type WalletTransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Amount      string     `json:"amount"`
	Type        string     `json:"type"`
	Stage       string     `json:"stage"`
	ReferenceID *uuid.UUID `json:"referenceId,omitempty"`
	ExternalRef *string    `json:"externalRef,omitempty"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type WalletTransactionPageResponse struct {
	Items      []WalletTransactionResponse `json:"items"`
	NextCursor string                      `json:"nextCursor,omitempty"`
}

// moneyCopy renders decimals at ledger scale while copying views.
var moneyCopy = copier.Option{
	Converters: []copier.TypeConverter{{
		SrcType: decimal.Decimal{},
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			return money.String(src.(decimal.Decimal)), nil
		},
	}},
}

func FromWalletView(v *queries.WalletView) (*WalletResponse, error) {
	res := &WalletResponse{}
	if err := copier.CopyWithOption(res, v, moneyCopy); err != nil {
		return nil, err
	}
	return res, nil
}

func FromWalletTransactionView(v *queries.WalletTransactionView) (*WalletTransactionResponse, error) {
	res := &WalletTransactionResponse{}
	if err := copier.CopyWithOption(res, v, moneyCopy); err != nil {
		return nil, err
	}
	return res, nil
}

func FromWalletTransactionPage(items []*queries.WalletTransactionView, next *queries.Cursor) (*WalletTransactionPageResponse, error) {
	res := &WalletTransactionPageResponse{Items: make([]WalletTransactionResponse, 0, len(items))}
	if err := copier.CopyWithOption(&res.Items, items, moneyCopy); err != nil {
		return nil, err
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}
