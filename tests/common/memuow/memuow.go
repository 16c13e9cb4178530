//go:build unit

// Package memuow is an in-memory UnitOfWork for use case tests. Transactions
// run one at a time against a copy of the state; the copy replaces the
// committed state only when the callback returns nil.
package memuow

import (
	"context"
	"sort"
	"sync"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu    sync.Mutex
	state *state

	// BeforeCommit, when set, runs after a successful callback and may veto
	// the commit. Tests use it to inject infrastructure failures.
	BeforeCommit func() error
}

func New() *Store {
	return &Store{state: newState()}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.state.clone()
	if err := fn(ctx, &memTx{st: working}); err != nil {
		return err
	}
	if s.BeforeCommit != nil {
		if err := s.BeforeCommit(); err != nil {
			return err
		}
	}
	s.state = working
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{s: s}
}

// view runs fn against the committed state.
func (s *Store) view(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func duplicate(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

func checkViolated(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindCheckViolated)
}

type memTx struct {
	st *state
}

func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t.st} }
func (t *memTx) Slots() shared.SlotRepository               { return slotRepo{t.st} }
func (t *memTx) Wallets() shared.WalletRepository           { return walletRepo{t.st} }
func (t *memTx) WalletTransactions() shared.WalletTransactionRepository {
	return walletTxRepo{t.st}
}
func (t *memTx) SettlementJobs() shared.SettlementJobRepository { return jobRepo{t.st} }
func (t *memTx) Outbox() shared.OutboxRepository                { return outboxRepo{t.st} }
func (t *memTx) Idempotency() shared.IdempotencyRepository      { return idempotencyRepo{t.st} }
func (t *memTx) Reads() shared.CommandReads                     { return reads{t.st} }
func (t *memTx) DB() sqlc.DBTX                                  { return nil }

// ---------------------------------------------------------------------------
// state

type walletRow struct {
	id        uuid.UUID
	owner     uuid.UUID
	balance   decimal.Decimal
	held      decimal.Decimal
	createdAt time.Time
	updatedAt time.Time
}

type txRow struct {
	id        uuid.UUID
	params    wallet.TransactionParams
	createdAt time.Time
}

func (r txRow) domain() *wallet.Transaction {
	return wallet.ReconstructTransaction(r.id, r.params, r.createdAt)
}

type extraRow struct {
	arenaID uuid.UUID
	extra   shared.ExtraSnapshot
}

type outboxRow struct {
	event       shared.OutboxEvent
	publishedAt *time.Time
	lastError   string
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type state struct {
	users        map[uuid.UUID]user.Role
	arenas       map[uuid.UUID]shared.ArenaSnapshot
	extras       map[uuid.UUID]extraRow
	reservations map[uuid.UUID]reservation.ReconstructParams
	slots        []reservation.Slot
	wallets      map[uuid.UUID]walletRow // by owner
	transactions []txRow
	jobs         map[string]shared.SettlementJob
	outbox       []outboxRow
	idempotency  map[idemKey]shared.IdempotencyRecord
}

func newState() *state {
	return &state{
		users:        map[uuid.UUID]user.Role{},
		arenas:       map[uuid.UUID]shared.ArenaSnapshot{},
		extras:       map[uuid.UUID]extraRow{},
		reservations: map[uuid.UUID]reservation.ReconstructParams{},
		wallets:      map[uuid.UUID]walletRow{},
		jobs:         map[string]shared.SettlementJob{},
		idempotency:  map[idemKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.arenas {
		c.arenas[k] = v
	}
	for k, v := range s.extras {
		c.extras[k] = v
	}
	for k, v := range s.reservations {
		v.Extras = append([]reservation.Extra(nil), v.Extras...)
		c.reservations[k] = v
	}
	c.slots = append([]reservation.Slot(nil), s.slots...)
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	c.transactions = append([]txRow(nil), s.transactions...)
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	c.outbox = append([]outboxRow(nil), s.outbox...)
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

func (s *state) walletByID(id uuid.UUID) (walletRow, bool) {
	for _, w := range s.wallets {
		if w.id == id {
			return w, true
		}
	}
	return walletRow{}, false
}

// ---------------------------------------------------------------------------
// reservations and slots

type reservationRepo struct{ st *state }

func (r reservationRepo) Create(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	if _, ok := r.st.reservations[res.ID()]; ok {
		return duplicate("reservation exists")
	}
	r.st.reservations[res.ID()] = reservation.ReconstructParams{
		ID:            res.ID(),
		CustomerID:    res.CustomerID(),
		ArenaID:       res.ArenaID(),
		Date:          res.Date(),
		Slots:         append([]reservation.SlotKey(nil), res.Slots()...),
		Extras:        append([]reservation.Extra(nil), res.Extras()...),
		Price:         res.Price(),
		Status:        res.Status(),
		PaymentMethod: res.PaymentMethod(),
		ConfirmedAt:   res.ConfirmedAt(),
		CanceledAt:    res.CanceledAt(),
		CreatedAt:     res.CreatedAt(),
		UpdatedAt:     res.UpdatedAt(),
	}
	return nil
}

func (r reservationRepo) FindForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	p, ok := r.st.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	p.Extras = append([]reservation.Extra(nil), p.Extras...)
	return reservation.ReconstructReservation(p)
}

func (r reservationRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation, from reservation.Status) error {
	p, ok := r.st.reservations[res.ID()]
	if !ok || p.Status != from {
		return notFound("reservation status changed concurrently")
	}
	p.Status = res.Status()
	p.ConfirmedAt = res.ConfirmedAt()
	p.CanceledAt = res.CanceledAt()
	p.UpdatedAt = res.UpdatedAt()
	r.st.reservations[res.ID()] = p
	return nil
}

func (r reservationRepo) CancelExtras(_ context.Context, _ sqlc.DBTX, reservationID uuid.UUID, at time.Time) error {
	p, ok := r.st.reservations[reservationID]
	if !ok {
		return nil
	}
	for i := range p.Extras {
		if p.Extras[i].CanceledAt == nil {
			canceledAt := at
			p.Extras[i].CanceledAt = &canceledAt
		}
	}
	r.st.reservations[reservationID] = p
	return nil
}

type slotRepo struct{ st *state }

func (r slotRepo) FindActiveConflicts(_ context.Context, _ sqlc.DBTX, date calendar.Date, keys []reservation.SlotKey) ([]reservation.SlotKey, error) {
	var out []reservation.SlotKey
	for _, k := range keys {
		if r.activeSlot(date, k) >= 0 {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r slotRepo) activeSlot(date calendar.Date, k reservation.SlotKey) int {
	for i, s := range r.st.slots {
		if s.IsActive() && s.Date == date && s.Key() == k {
			return i
		}
	}
	return -1
}

func (r slotRepo) Insert(_ context.Context, _ sqlc.DBTX, reservationID uuid.UUID, date calendar.Date, key reservation.SlotKey) error {
	if r.activeSlot(date, key) >= 0 {
		return duplicate("uq_reservation_slots_active")
	}
	r.st.slots = append(r.st.slots, reservation.Slot{
		ID:            uuid.New(),
		ReservationID: reservationID,
		CourtID:       key.CourtID,
		Date:          date,
		Hour:          key.Hour,
	})
	return nil
}

func (r slotRepo) ListByReservation(_ context.Context, _ sqlc.DBTX, reservationID uuid.UUID) ([]reservation.Slot, error) {
	var out []reservation.Slot
	for _, s := range r.st.slots {
		if s.ReservationID == reservationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r slotRepo) CancelByReservation(_ context.Context, _ sqlc.DBTX, reservationID uuid.UUID, at time.Time) (int64, error) {
	var n int64
	for i := range r.st.slots {
		if r.st.slots[i].ReservationID == reservationID && r.st.slots[i].IsActive() {
			canceledAt := at
			r.st.slots[i].CanceledAt = &canceledAt
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// wallets

type walletRepo struct{ st *state }

func (r walletRepo) EnsureExists(_ context.Context, _ sqlc.DBTX, ownerID uuid.UUID, now time.Time) error {
	if _, ok := r.st.wallets[ownerID]; ok {
		return nil
	}
	r.st.wallets[ownerID] = walletRow{id: uuid.New(), owner: ownerID, createdAt: now, updatedAt: now}
	return nil
}

func (r walletRepo) FindByOwnerForUpdate(_ context.Context, _ sqlc.DBTX, ownerID uuid.UUID) (*wallet.Wallet, error) {
	w, ok := r.st.wallets[ownerID]
	if !ok {
		return nil, notFound("wallet not found")
	}
	return wallet.Reconstruct(w.id, w.owner, w.balance, w.held, w.createdAt, w.updatedAt)
}

func (r walletRepo) Save(_ context.Context, _ sqlc.DBTX, w *wallet.Wallet) error {
	row, ok := r.st.wallets[w.OwnerID()]
	if !ok || row.id != w.ID() {
		return notFound("wallet not found")
	}
	if w.Balance().IsNegative() || w.Held().IsNegative() {
		return checkViolated("wallets balance check")
	}
	row.balance = w.Balance()
	row.held = w.Held()
	row.updatedAt = w.UpdatedAt()
	r.st.wallets[w.OwnerID()] = row
	return nil
}

type walletTxRepo struct{ st *state }

func (r walletTxRepo) Create(_ context.Context, _ sqlc.DBTX, t *wallet.Transaction) error {
	p := wallet.TransactionParams{
		WalletID:    t.WalletID(),
		Amount:      t.Amount(),
		Type:        t.Type(),
		Stage:       t.Stage(),
		ReferenceID: t.ReferenceID(),
		ExternalRef: t.ExternalRef(),
		Note:        t.Note(),
	}
	for _, row := range r.st.transactions {
		e := row.params
		if p.ExternalRef != nil && e.ExternalRef != nil && *p.ExternalRef == *e.ExternalRef {
			return duplicate("wallet_transactions_external_ref_key")
		}
		if p.ReferenceID == nil || e.ReferenceID == nil || *p.ReferenceID != *e.ReferenceID {
			continue
		}
		if p.Stage.IsOpen() && e.Stage.IsOpen() {
			return duplicate("uq_wallet_transactions_open_reference")
		}
		if p.Stage == wallet.StageSettled && e.Stage == wallet.StageSettled && p.WalletID == e.WalletID && p.Type == e.Type {
			return duplicate("uq_wallet_transactions_settled")
		}
	}
	r.st.transactions = append(r.st.transactions, txRow{id: t.ID(), params: p, createdAt: t.CreatedAt()})
	return nil
}

func (r walletTxRepo) FindOpenByReferenceForUpdate(_ context.Context, _ sqlc.DBTX, referenceID uuid.UUID) (*wallet.Transaction, error) {
	for _, row := range r.st.transactions {
		if row.params.ReferenceID != nil && *row.params.ReferenceID == referenceID && row.params.Stage.IsOpen() {
			return row.domain(), nil
		}
	}
	return nil, notFound("open transaction not found")
}

func (r walletTxRepo) FindForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*wallet.Transaction, uuid.UUID, error) {
	for _, row := range r.st.transactions {
		if row.id == id {
			w, ok := r.st.walletByID(row.params.WalletID)
			if !ok {
				return nil, uuid.Nil, notFound("wallet not found")
			}
			return row.domain(), w.owner, nil
		}
	}
	return nil, uuid.Nil, notFound("transaction not found")
}

func (r walletTxRepo) FindByExternalRef(_ context.Context, _ sqlc.DBTX, externalRef string) (*wallet.Transaction, error) {
	for _, row := range r.st.transactions {
		if row.params.ExternalRef != nil && *row.params.ExternalRef == externalRef {
			return row.domain(), nil
		}
	}
	return nil, notFound("transaction not found")
}

func (r walletTxRepo) Close(_ context.Context, _ sqlc.DBTX, id uuid.UUID, stage wallet.Stage) error {
	for i, row := range r.st.transactions {
		if row.id == id && row.params.Stage.IsOpen() {
			r.st.transactions[i].params.Stage = stage
			return nil
		}
	}
	return notFound("open transaction not found")
}

// ---------------------------------------------------------------------------
// settlement jobs

type jobRepo struct{ st *state }

func (r jobRepo) Upsert(_ context.Context, _ sqlc.DBTX, job shared.NewSettlementJob) error {
	existing, ok := r.st.jobs[job.ID]
	createdAt := job.CreatedAt
	if ok {
		createdAt = existing.CreatedAt
	}
	r.st.jobs[job.ID] = shared.SettlementJob{
		ID:            job.ID,
		ReservationID: job.ReservationID,
		Payload:       job.Payload,
		RunAt:         job.RunAt,
		MaxAttempts:   job.MaxAttempts,
		Status:        shared.JobQueued,
		CreatedAt:     createdAt,
		UpdatedAt:     job.CreatedAt,
	}
	return nil
}

func (r jobRepo) Delete(_ context.Context, _ sqlc.DBTX, id string) (bool, error) {
	job, ok := r.st.jobs[id]
	if !ok || (job.Status != shared.JobQueued && job.Status != shared.JobFailed) {
		return false, nil
	}
	delete(r.st.jobs, id)
	return true, nil
}

func (r jobRepo) ClaimDue(_ context.Context, _ sqlc.DBTX, now, leaseCutoff time.Time, limit int32) ([]shared.SettlementJob, error) {
	var due []shared.SettlementJob
	for _, j := range r.st.jobs {
		queued := j.Status == shared.JobQueued && !j.RunAt.After(now)
		stale := j.Status == shared.JobRunning && j.LockedAt != nil && j.LockedAt.Before(leaseCutoff)
		if queued || stale {
			due = append(due, j)
		}
	}
	sort.Slice(due, func(a, b int) bool {
		if due[a].RunAt.Equal(due[b].RunAt) {
			return due[a].ID < due[b].ID
		}
		return due[a].RunAt.Before(due[b].RunAt)
	})
	if len(due) > int(limit) {
		due = due[:limit]
	}
	for i := range due {
		lockedAt := now
		due[i].Status = shared.JobRunning
		due[i].LockedAt = &lockedAt
		due[i].UpdatedAt = now
		r.st.jobs[due[i].ID] = due[i]
	}
	return due, nil
}

func (r jobRepo) update(id string, fn func(j *shared.SettlementJob)) {
	j, ok := r.st.jobs[id]
	if !ok {
		return
	}
	fn(&j)
	r.st.jobs[id] = j
}

func (r jobRepo) Complete(_ context.Context, _ sqlc.DBTX, id string, note *string, now time.Time) error {
	r.update(id, func(j *shared.SettlementJob) {
		j.Status = shared.JobDone
		j.LockedAt = nil
		j.LastError = note
		j.UpdatedAt = now
	})
	return nil
}

func (r jobRepo) Retry(_ context.Context, _ sqlc.DBTX, id string, attempts int32, runAt time.Time, lastError string, now time.Time) error {
	r.update(id, func(j *shared.SettlementJob) {
		j.Status = shared.JobQueued
		j.Attempts = attempts
		j.RunAt = runAt
		j.LastError = &lastError
		j.LockedAt = nil
		j.UpdatedAt = now
	})
	return nil
}

func (r jobRepo) Fail(_ context.Context, _ sqlc.DBTX, id string, attempts int32, lastError string, now time.Time) error {
	r.update(id, func(j *shared.SettlementJob) {
		j.Status = shared.JobFailed
		j.Attempts = attempts
		j.LastError = &lastError
		j.LockedAt = nil
		j.UpdatedAt = now
	})
	return nil
}

func (r jobRepo) Requeue(_ context.Context, _ sqlc.DBTX, id string, runAt time.Time) (bool, error) {
	j, ok := r.st.jobs[id]
	if !ok || j.Status != shared.JobFailed {
		return false, nil
	}
	j.Status = shared.JobQueued
	j.Attempts = 0
	j.RunAt = runAt
	j.LastError = nil
	j.UpdatedAt = runAt
	r.st.jobs[id] = j
	return true, nil
}

// ---------------------------------------------------------------------------
// outbox and idempotency

type outboxRepo struct{ st *state }

func (r outboxRepo) Enqueue(_ context.Context, _ sqlc.DBTX, topic string, aggregateID uuid.UUID, payload []byte, now time.Time) error {
	r.st.outbox = append(r.st.outbox, outboxRow{event: shared.OutboxEvent{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     payload,
		CreatedAt:   now,
	}})
	return nil
}

func (r outboxRepo) ClaimPending(_ context.Context, _ sqlc.DBTX, maxAttempts, limit int32) ([]shared.OutboxEvent, error) {
	var out []shared.OutboxEvent
	for _, row := range r.st.outbox {
		if int32(len(out)) >= limit {
			break
		}
		if row.publishedAt == nil && row.event.Attempts < maxAttempts {
			out = append(out, row.event)
		}
	}
	return out, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, _ sqlc.DBTX, id uuid.UUID, at time.Time) error {
	for i := range r.st.outbox {
		if r.st.outbox[i].event.ID == id {
			publishedAt := at
			r.st.outbox[i].publishedAt = &publishedAt
		}
	}
	return nil
}

func (r outboxRepo) MarkFailed(_ context.Context, _ sqlc.DBTX, id uuid.UUID, lastError string) error {
	for i := range r.st.outbox {
		if r.st.outbox[i].event.ID == id {
			r.st.outbox[i].event.Attempts++
			r.st.outbox[i].lastError = lastError
		}
	}
	return nil
}

type idempotencyRepo struct{ st *state }

func (r idempotencyRepo) TryInsert(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error) {
	k := idemKey{key: key, userID: userID}
	if existing, ok := r.st.idempotency[k]; ok && !existing.ExpiresAt.Before(now) {
		return false, nil
	}
	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) UpdateStatusCompleted(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error {
	k := idemKey{key: key, userID: userID}
	rec, ok := r.st.idempotency[k]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResponseBodyHash = &resultHash
	rec.ResultReservationID = &reservationID
	r.st.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID) error {
	k := idemKey{key: key, userID: userID}
	if rec, ok := r.st.idempotency[k]; ok && rec.Status == shared.IdempotencyStatusProcessing {
		delete(r.st.idempotency, k)
	}
	return nil
}

// ---------------------------------------------------------------------------
// command reads

type reads struct{ st *state }

func (r reads) ArenaByID(_ context.Context, id uuid.UUID) (*shared.ArenaSnapshot, error) {
	a, ok := r.st.arenas[id]
	if !ok {
		return nil, notFound("arena not found")
	}
	return &a, nil
}

func (r reads) ExtrasByIDs(_ context.Context, arenaID uuid.UUID, ids []uuid.UUID) ([]shared.ExtraSnapshot, error) {
	var out []shared.ExtraSnapshot
	for _, id := range ids {
		if row, ok := r.st.extras[id]; ok && row.arenaID == arenaID {
			out = append(out, row.extra)
		}
	}
	return out, nil
}

func (r reads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	p, ok := r.st.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return &shared.ReservationSnapshot{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		ArenaID:     p.ArenaID,
		OperatorID:  r.st.arenas[p.ArenaID].OperatorID,
		Status:      p.Status.String(),
		TotalAmount: p.Price.Total,
	}, nil
}

func (r reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idemKey{key: key, userID: userID}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r reads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	role, ok := r.st.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return &shared.UserSnapshot{ID: id, Role: role}, nil
}

type lockedReads struct{ s *Store }

func (l *lockedReads) ArenaByID(ctx context.Context, id uuid.UUID) (out *shared.ArenaSnapshot, err error) {
	l.s.view(func(st *state) { out, err = reads{st}.ArenaByID(ctx, id) })
	return
}

func (l *lockedReads) ExtrasByIDs(ctx context.Context, arenaID uuid.UUID, ids []uuid.UUID) (out []shared.ExtraSnapshot, err error) {
	l.s.view(func(st *state) { out, err = reads{st}.ExtrasByIDs(ctx, arenaID, ids) })
	return
}

func (l *lockedReads) ReservationByID(ctx context.Context, id uuid.UUID) (out *shared.ReservationSnapshot, err error) {
	l.s.view(func(st *state) { out, err = reads{st}.ReservationByID(ctx, id) })
	return
}

func (l *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (out *shared.IdempotencyRecord, err error) {
	l.s.view(func(st *state) { out, err = reads{st}.IdempotencyByKey(ctx, key, userID) })
	return
}

func (l *lockedReads) UserByID(ctx context.Context, id uuid.UUID) (out *shared.UserSnapshot, err error) {
	l.s.view(func(st *state) { out, err = reads{st}.UserByID(ctx, id) })
	return
}
