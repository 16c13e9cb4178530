package settlement

import (
	"encoding/json"

	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayloadVersion is the version written by Schedule. Payloads without a
// version field predate versioning and decode as version 0.
const PayloadVersion = 1

var ErrUnsupportedPayload = errs.New("unsupported settlement payload")

// Payload is the stored job body. Amount is informational; settlement always
// recomputes the split from the reservation total.
type Payload struct {
	Version       int
	ReservationID uuid.UUID
	Amount        decimal.Decimal
}

type encodedPayload struct {
	Version       int       `json:"version"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Amount        string    `json:"amount"`
}

// decodedPayload accepts legacy bodies: no version, and amount as a JSON number.
type decodedPayload struct {
	Version       *int             `json:"version"`
	ReservationID uuid.UUID        `json:"reservation_id"`
	Amount        *decimal.Decimal `json:"amount"`
}

func EncodePayload(reservationID uuid.UUID, amount decimal.Decimal) ([]byte, error) {
	b, err := json.Marshal(encodedPayload{
		Version:       PayloadVersion,
		ReservationID: reservationID,
		Amount:        money.String(amount),
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode settlement payload")
	}
	return b, nil
}

func DecodePayload(b []byte) (Payload, error) {
	var w decodedPayload
	if err := json.Unmarshal(b, &w); err != nil {
		return Payload{}, errs.Mark(errs.Wrap(err, "failed to decode settlement payload"), ErrUnsupportedPayload)
	}

	p := Payload{ReservationID: w.ReservationID}
	if w.Version != nil {
		p.Version = *w.Version
	}
	if p.Version < 0 || p.Version > PayloadVersion {
		return Payload{}, errs.Wrapf(ErrUnsupportedPayload, "version %d", p.Version)
	}
	if p.ReservationID == uuid.Nil {
		return Payload{}, errs.Wrap(ErrUnsupportedPayload, "reservation_id is missing")
	}
	if w.Amount != nil {
		p.Amount = *w.Amount
	}
	return p, nil
}
