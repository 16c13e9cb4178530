//go:build unit

package memuow

import (
	"context"
	"sort"
	"time"

	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReservationReadStore serves queries.NewReservationQueries from the
// committed state.
func (s *Store) ReservationReadStore() queries.ReservationReadStore {
	return reservationReadStore{s: s}
}

func (s *Store) WalletReadStore() queries.WalletReadStore {
	return walletReadStore{s: s}
}

func (s *Store) SettlementJobReadStore() queries.SettlementJobReadStore {
	return jobReadStore{s: s}
}

type reservationReadStore struct{ s *Store }

func (r reservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view *queries.ReservationView
		err  error
	)
	r.s.view(func(st *state) {
		p, ok := st.reservations[id]
		if !ok {
			err = notFound("reservation not found")
			return
		}
		a := st.arenas[p.ArenaID]
		view = &queries.ReservationView{
			ID:            p.ID,
			CustomerID:    p.CustomerID,
			ArenaID:       p.ArenaID,
			ArenaName:     a.Name,
			OperatorID:    a.OperatorID,
			Date:          p.Date.String(),
			Status:        p.Status.String(),
			PaymentMethod: string(p.PaymentMethod),
			BaseAmount:    p.Price.Base,
			ExtrasAmount:  p.Price.Extras,
			TotalAmount:   p.Price.Total,
			ConfirmedAt:   p.ConfirmedAt,
			CanceledAt:    p.CanceledAt,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
		for _, sl := range st.slots {
			if sl.ReservationID == id {
				view.Slots = append(view.Slots, queries.SlotView{CourtID: sl.CourtID, Hour: sl.Hour, CanceledAt: sl.CanceledAt})
			}
		}
		for _, e := range p.Extras {
			view.Extras = append(view.Extras, queries.ExtraView{
				ExtraID:    e.ExtraID,
				Name:       e.Name,
				Quantity:   e.Quantity,
				UnitPrice:  e.UnitPrice,
				TotalPrice: e.TotalPrice,
				CanceledAt: e.CanceledAt,
			})
		}
	})
	return view, err
}

func (r reservationReadStore) ListByCustomer(_ context.Context, customerID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	var items []*queries.ReservationListItem
	r.s.view(func(st *state) {
		for _, p := range st.reservations {
			if p.CustomerID != customerID {
				continue
			}
			items = append(items, &queries.ReservationListItem{
				ID:          p.ID,
				ArenaID:     p.ArenaID,
				ArenaName:   st.arenas[p.ArenaID].Name,
				Date:        p.Date.String(),
				Status:      p.Status.String(),
				TotalAmount: p.Price.Total,
				CreatedAt:   p.CreatedAt,
			})
		}
	})
	return keysetPage(items, afterCreatedAt, afterID, limit, func(i *queries.ReservationListItem) (time.Time, uuid.UUID) {
		return i.CreatedAt, i.ID
	}), nil
}

type walletReadStore struct{ s *Store }

func (r walletReadStore) FindByOwner(_ context.Context, ownerID uuid.UUID) (*queries.WalletView, error) {
	var (
		view *queries.WalletView
		err  error
	)
	r.s.view(func(st *state) {
		w, ok := st.wallets[ownerID]
		if !ok {
			err = notFound("wallet not found")
			return
		}
		view = &queries.WalletView{
			ID:               w.id,
			OwnerID:          w.owner,
			AvailableBalance: w.balance,
			HeldAmount:       w.held,
			UpdatedAt:        w.updatedAt,
		}
	})
	return view, err
}

func (r walletReadStore) ListTransactions(_ context.Context, walletID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.WalletTransactionView, error) {
	var items []*queries.WalletTransactionView
	r.s.view(func(st *state) {
		for _, row := range st.transactions {
			if row.params.WalletID != walletID {
				continue
			}
			t := row.domain()
			items = append(items, &queries.WalletTransactionView{
				ID:          t.ID(),
				Amount:      t.Amount(),
				Type:        t.Type().String(),
				Stage:       t.Stage().String(),
				ReferenceID: t.ReferenceID(),
				ExternalRef: t.ExternalRef(),
				Note:        t.Note(),
				CreatedAt:   t.CreatedAt(),
			})
		}
	})
	return keysetPage(items, afterCreatedAt, afterID, limit, func(v *queries.WalletTransactionView) (time.Time, uuid.UUID) {
		return v.CreatedAt, v.ID
	}), nil
}

type jobReadStore struct{ s *Store }

func jobView(j shared.SettlementJob) *queries.SettlementJobView {
	return &queries.SettlementJobView{
		ID:            j.ID,
		ReservationID: j.ReservationID,
		RunAt:         j.RunAt,
		Attempts:      j.Attempts,
		MaxAttempts:   j.MaxAttempts,
		Status:        string(j.Status),
		LastError:     j.LastError,
		LockedAt:      j.LockedAt,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

func (r jobReadStore) FindByID(_ context.Context, id string) (*queries.SettlementJobView, error) {
	var (
		view *queries.SettlementJobView
		err  error
	)
	r.s.view(func(st *state) {
		j, ok := st.jobs[id]
		if !ok {
			err = notFound("settlement job not found")
			return
		}
		view = jobView(j)
	})
	return view, err
}

// ListByStatus orders by run_at, then id.
func (r jobReadStore) ListByStatus(_ context.Context, status string, limit int32) ([]*queries.SettlementJobView, error) {
	var out []*queries.SettlementJobView
	r.s.view(func(st *state) {
		for _, j := range st.jobs {
			if string(j.Status) == status {
				out = append(out, jobView(j))
			}
		}
	})
	sort.Slice(out, func(a, b int) bool {
		if out[a].RunAt.Equal(out[b].RunAt) {
			return out[a].ID < out[b].ID
		}
		return out[a].RunAt.Before(out[b].RunAt)
	})
	if int32(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// keysetPage orders by (created_at DESC, id DESC) and keeps rows strictly
// after the cursor, like the SQL readstores do.
func keysetPage[T any](rows []T, afterAt *time.Time, afterID *uuid.UUID, limit int32, key func(T) (time.Time, uuid.UUID)) []T {
	sort.Slice(rows, func(a, b int) bool {
		ta, ia := key(rows[a])
		tb, ib := key(rows[b])
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return ia.String() > ib.String()
	})
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if afterAt != nil && afterID != nil {
			t, id := key(r)
			t = t.Truncate(time.Microsecond)
			if t.After(*afterAt) || (t.Equal(*afterAt) && id.String() >= afterID.String()) {
				continue
			}
		}
		out = append(out, r)
		if int32(len(out)) >= limit {
			break
		}
	}
	return out
}
