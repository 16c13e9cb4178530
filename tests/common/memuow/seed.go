//go:build unit

package memuow

import (
	"time"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Store) AddUser(id uuid.UUID, role user.Role) {
	s.view(func(st *state) { st.users[id] = role })
}

func (s *Store) AddArena(a shared.ArenaSnapshot) {
	s.view(func(st *state) { st.arenas[a.ID] = a })
}

func (s *Store) AddExtra(arenaID uuid.UUID, e arena.Extra) {
	s.view(func(st *state) { st.extras[e.ID] = extraRow{arenaID: arenaID, extra: e} })
}

// Fund creates the owner's wallet when missing and sets its balance.
func (s *Store) Fund(ownerID uuid.UUID, balance decimal.Decimal) {
	s.view(func(st *state) {
		w, ok := st.wallets[ownerID]
		if !ok {
			w = walletRow{id: uuid.New(), owner: ownerID}
		}
		w.balance = balance
		st.wallets[ownerID] = w
	})
}

// PutJob stores a job row as is, bypassing the scheduler.
func (s *Store) PutJob(job shared.SettlementJob) {
	s.view(func(st *state) { st.jobs[job.ID] = job })
}

// Balances returns the committed balance and held amount of the owner's
// wallet, or zeros when it has none.
func (s *Store) Balances(ownerID uuid.UUID) (balance, held decimal.Decimal) {
	s.view(func(st *state) {
		w := st.wallets[ownerID]
		balance, held = w.balance, w.held
	})
	return balance, held
}

func (s *Store) HasWallet(ownerID uuid.UUID) bool {
	var ok bool
	s.view(func(st *state) { _, ok = st.wallets[ownerID] })
	return ok
}

// Transactions lists the owner's ledger entries in insertion order.
func (s *Store) Transactions(ownerID uuid.UUID) []*wallet.Transaction {
	var out []*wallet.Transaction
	s.view(func(st *state) {
		w, ok := st.wallets[ownerID]
		if !ok {
			return
		}
		for _, row := range st.transactions {
			if row.params.WalletID == w.id {
				out = append(out, row.domain())
			}
		}
	})
	return out
}

// TransactionsByReference lists every entry tagged with referenceID.
func (s *Store) TransactionsByReference(referenceID uuid.UUID) []*wallet.Transaction {
	var out []*wallet.Transaction
	s.view(func(st *state) {
		for _, row := range st.transactions {
			if row.params.ReferenceID != nil && *row.params.ReferenceID == referenceID {
				out = append(out, row.domain())
			}
		}
	})
	return out
}

func (s *Store) ReservationCount() int {
	var n int
	s.view(func(st *state) { n = len(st.reservations) })
	return n
}

func (s *Store) ReservationStatus(id uuid.UUID) (reservation.Status, bool) {
	var (
		status reservation.Status
		ok     bool
	)
	s.view(func(st *state) {
		var p reservation.ReconstructParams
		p, ok = st.reservations[id]
		status = p.Status
	})
	return status, ok
}

// ReservationExtras returns the stored priced extras of a reservation.
func (s *Store) ReservationExtras(id uuid.UUID) []reservation.Extra {
	var out []reservation.Extra
	s.view(func(st *state) {
		out = append(out, st.reservations[id].Extras...)
	})
	return out
}

func (s *Store) Slots(reservationID uuid.UUID) []reservation.Slot {
	var out []reservation.Slot
	s.view(func(st *state) {
		for _, sl := range st.slots {
			if sl.ReservationID == reservationID {
				out = append(out, sl)
			}
		}
	})
	return out
}

func (s *Store) ActiveSlotCount() int {
	var n int
	s.view(func(st *state) {
		for _, sl := range st.slots {
			if sl.IsActive() {
				n++
			}
		}
	})
	return n
}

func (s *Store) Job(id string) (shared.SettlementJob, bool) {
	var (
		job shared.SettlementJob
		ok  bool
	)
	s.view(func(st *state) { job, ok = st.jobs[id] })
	return job, ok
}

type OutboxRecord struct {
	Event       shared.OutboxEvent
	PublishedAt *time.Time
	LastError   string
}

func (s *Store) OutboxRecords() []OutboxRecord {
	var out []OutboxRecord
	s.view(func(st *state) {
		for _, row := range st.outbox {
			out = append(out, OutboxRecord{Event: row.event, PublishedAt: row.publishedAt, LastError: row.lastError})
		}
	})
	return out
}

func (s *Store) IdempotencyRecord(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	var (
		rec shared.IdempotencyRecord
		ok  bool
	)
	s.view(func(st *state) { rec, ok = st.idempotency[idemKey{key: key, userID: userID}] })
	return rec, ok
}
