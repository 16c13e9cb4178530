package converter

import (
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToCreateParams(res *reservation.Reservation) sqlc.CreateReservationParams {
	price := res.Price()
	return sqlc.CreateReservationParams{
		ID:              res.ID(),
		CustomerID:      res.CustomerID(),
		ArenaID:         res.ArenaID(),
		ReservationDate: DateToPgtype(res.Date()),
		Status:          res.Status().String(),
		PaymentMethod:   string(res.PaymentMethod()),
		BaseAmount:      price.Base,
		ExtrasAmount:    price.Extras,
		TotalAmount:     price.Total,
		OperatorShare:   price.OperatorShare,
		PlatformFee:     price.PlatformFee,
		CreatedAt:       pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

func ExtraToCreateParams(res *reservation.Reservation, e reservation.Extra) sqlc.CreateReservationExtraParams {
	return sqlc.CreateReservationExtraParams{
		ID:            e.ID,
		ReservationID: res.ID(),
		ExtraID:       e.ExtraID,
		Name:          e.Name,
		Quantity:      int32(e.Quantity), // #nosec G115 -- bounded by request validation
		UnitPrice:     e.UnitPrice,
		TotalPrice:    e.TotalPrice,
	}
}

func ReservationFromRow(row sqlc.Reservations, slots []sqlc.ReservationSlots, extras []sqlc.ReservationExtras) (*reservation.Reservation, error) {
	keys := make([]reservation.SlotKey, 0, len(slots))
	for _, s := range slots {
		keys = append(keys, reservation.SlotKey{CourtID: s.CourtID, Hour: int(s.Hour)})
	}

	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		ArenaID:    row.ArenaID,
		Date:       DateFromPgtype(row.ReservationDate),
		Slots:      keys,
		Extras:     ExtrasFromRows(extras),
		Price: reservation.PriceBreakdown{
			Base:          row.BaseAmount,
			Extras:        row.ExtrasAmount,
			Total:         row.TotalAmount,
			OperatorShare: row.OperatorShare,
			PlatformFee:   row.PlatformFee,
		},
		Status:        reservation.Status(row.Status),
		PaymentMethod: reservation.PaymentMethod(row.PaymentMethod),
		ConfirmedAt:   pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CanceledAt:    pgconv.TimePtrFromPgtype(row.CanceledAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func ExtrasFromRows(rows []sqlc.ReservationExtras) []reservation.Extra {
	out := make([]reservation.Extra, 0, len(rows))
	for _, e := range rows {
		out = append(out, reservation.Extra{
			ID:         e.ID,
			ExtraID:    e.ExtraID,
			Name:       e.Name,
			Quantity:   int(e.Quantity),
			UnitPrice:  e.UnitPrice,
			TotalPrice: e.TotalPrice,
			CanceledAt: pgconv.TimePtrFromPgtype(e.CanceledAt),
		})
	}
	return out
}

func SlotFromRow(row sqlc.ReservationSlots) reservation.Slot {
	return reservation.Slot{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		CourtID:       row.CourtID,
		Date:          DateFromPgtype(row.SlotDate),
		Hour:          int(row.Hour),
		CanceledAt:    pgconv.TimePtrFromPgtype(row.CanceledAt),
	}
}

func DateToPgtype(d calendar.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.StartIn(time.UTC))
}

func DateFromPgtype(pd pgtype.Date) calendar.Date {
	return calendar.Of(pgconv.DateFromPgtype(pd))
}
