package reservation

import (
	"arena-booking/internal/domain/arena"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceCalculator interface {
	Quote(a *arena.Arena, slotCount int, extras []ExtraRequest, catalog map[uuid.UUID]arena.Extra) (PriceBreakdown, []Extra, error)
}

// HourlyPriceCalculator charges the arena's hourly price per booked slot plus
// unit price times quantity for each extra.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

func (pc *HourlyPriceCalculator) Quote(
	a *arena.Arena,
	slotCount int,
	extras []ExtraRequest,
	catalog map[uuid.UUID]arena.Extra,
) (PriceBreakdown, []Extra, error) {
	if slotCount <= 0 {
		return PriceBreakdown{}, nil, errs.Wrap(ErrInvalidSlots, "no slots to price")
	}

	base := a.PricePerHour().Mul(decimal.NewFromInt(int64(slotCount)))

	lines := make([]Extra, 0, len(extras))
	extrasTotal := decimal.Zero
	for _, req := range extras {
		if req.Quantity < 1 {
			return PriceBreakdown{}, nil, errs.Wrapf(ErrInvalidSlots, "extra %s quantity %d", req.ExtraID, req.Quantity)
		}
		item, ok := catalog[req.ExtraID]
		if !ok || !item.IsActive {
			return PriceBreakdown{}, nil, errs.Mark(errs.Wrapf(arena.ErrExtraNotAvailable, "extra %s", req.ExtraID), ErrInvalidSlots)
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		lines = append(lines, Extra{
			ID:         uuid.New(),
			ExtraID:    item.ID,
			Name:       item.Name,
			Quantity:   req.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: lineTotal,
		})
		extrasTotal = extrasTotal.Add(lineTotal)
	}

	return PriceBreakdown{
		Base:   money.Round(base),
		Extras: money.Round(extrasTotal),
		Total:  money.Round(base.Add(extrasTotal)),
	}, lines, nil
}
