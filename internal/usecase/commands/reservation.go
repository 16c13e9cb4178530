package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/revenue"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/infra"
	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/availability"
	"arena-booking/internal/usecase/ledger"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReservationNotFound   = errs.New("reservation not found")
	ErrNoHeldTransaction     = errs.New("no held transaction for reservation")
	ErrAlreadyProcessed      = errs.New("reservation funds already processed")
	ErrDuplicateSettlement   = errs.New("duplicate settled transaction")
	ErrDuplicateReservation  = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress = errs.New("idempotency in progress")
)

const (
	createReservationEndpoint = "POST /api/reservations"
	idempotencyTTL            = 24 * time.Hour
)

type SlotInput struct {
	CourtID uuid.UUID `json:"court_id"`
	Hour    int       `json:"hour"`
}

type ExtraInput struct {
	ExtraID  uuid.UUID `json:"extra_id"`
	Quantity int       `json:"quantity"`
}

type CreateReservationInput struct {
	ArenaID       uuid.UUID    `json:"arena_id"`
	Date          string       `json:"date"`
	Slots         []SlotInput  `json:"slots"`
	Extras        []ExtraInput `json:"extras"`
	PaymentMethod string       `json:"payment_method"`
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput, customerID uuid.UUID, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
	SettleReservation(ctx context.Context, reservationID uuid.UUID) error
	CancelReservation(ctx context.Context, reservationID uuid.UUID, requestor uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow        shared.UnitOfWork
	scheduler  SettlementScheduler
	reader     ReservationReader
	platform   shared.PlatformAccountProvider
	feeRate    revenue.FeeRate
	calculator reservation.PriceCalculator
	clock      clock.Clock
	logger     *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	scheduler SettlementScheduler,
	reader ReservationReader,
	platform shared.PlatformAccountProvider,
	cfg config.LedgerConfig,
	calculator reservation.PriceCalculator,
	clk clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:        uow,
		scheduler:  scheduler,
		reader:     reader,
		platform:   platform,
		feeRate:    cfg.FeeRate,
		calculator: calculator,
		clock:      clk,
		logger:     logger,
	}
}

// validatedRequest is the input after shape checks that need no database.
type validatedRequest struct {
	date   calendar.Date
	slots  []reservation.SlotKey
	extras []reservation.ExtraRequest
	method reservation.PaymentMethod
}

func validateCreateInput(in CreateReservationInput) (*validatedRequest, error) {
	date, err := calendar.Parse(in.Date)
	if err != nil {
		return nil, errs.Mark(err, reservation.ErrInvalidSlots)
	}

	keys := make([]reservation.SlotKey, len(in.Slots))
	for i, s := range in.Slots {
		keys[i] = reservation.SlotKey{CourtID: s.CourtID, Hour: s.Hour}
	}
	slots, err := reservation.NewSlotKeys(keys)
	if err != nil {
		return nil, err
	}

	extras := make([]reservation.ExtraRequest, len(in.Extras))
	for i, e := range in.Extras {
		if e.Quantity < 1 {
			return nil, errs.Wrapf(reservation.ErrInvalidSlots, "extra %s quantity %d", e.ExtraID, e.Quantity)
		}
		extras[i] = reservation.ExtraRequest{ExtraID: e.ExtraID, Quantity: e.Quantity}
	}

	method := reservation.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		method = reservation.PaymentMethodWallet
	}
	if !method.IsValid() {
		return nil, errs.Wrapf(reservation.ErrUnsupportedPayment, "method %q", in.PaymentMethod)
	}

	return &validatedRequest{date: date, slots: slots, extras: extras, method: method}, nil
}

func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	in CreateReservationInput,
	customerID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	req, err := validateCreateInput(in)
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(in)
	replayID, err := c.reserveIdempotencyKey(ctx, idempotencyKey, customerID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		view, err := c.reader.GetByID(ctx, customerID, user.RoleCustomer, *replayID)
		if err != nil {
			return nil, err
		}
		return &CreateReservationResult{Reservation: view, IsReplayed: true}, nil
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := c.createInTx(ctx, tx, in.ArenaID, customerID, req)
		if err != nil {
			return err
		}
		reservationID = id
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, customerID, calculateIDHash(id), id)
	})
	if err != nil {
		c.releaseIdempotencyKey(ctx, idempotencyKey, customerID)
		return nil, err
	}

	view, err := c.reader.GetByID(ctx, customerID, user.RoleCustomer, reservationID)
	if err != nil {
		return nil, err
	}
	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

// reserveIdempotencyKey commits the key before any work starts so a parallel
// request with the same key sees it. A non-nil id means the key already
// completed and its result should be replayed.
func (c *reservationCommandsImpl) reserveIdempotencyKey(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
) (*uuid.UUID, error) {
	now := c.clock.Now()
	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		inserted, err = tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, createReservationEndpoint, requestHash, now.Add(idempotencyTTL), now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Released or expired between the insert attempt and this read.
			return nil, ErrIdempotencyInProgress
		}
		return nil, err
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return nil, errs.New("completed request missing result reservation ID")
		}
		return existing.ResultReservationID, nil
	case shared.IdempotencyStatusProcessing:
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateReservation
		}
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (c *reservationCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, userID)
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to release idempotency key",
			"key", key,
			"user_id", userID,
			"error", err,
		)
	}
}

func (c *reservationCommandsImpl) createInTx(
	ctx context.Context,
	tx shared.Tx,
	arenaID, customerID uuid.UUID,
	req *validatedRequest,
) (uuid.UUID, error) {
	now := c.clock.Now()

	venue, err := c.loadArena(ctx, tx, arenaID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := venue.EnsureActive(); err != nil {
		return uuid.Nil, err
	}
	for _, k := range req.slots {
		if err := venue.ValidateSlot(k.CourtID, req.date, k.Hour, now); err != nil {
			return uuid.Nil, errs.Mark(err, reservation.ErrInvalidSlots)
		}
	}

	catalog, err := c.loadExtras(ctx, tx, arenaID, req.extras)
	if err != nil {
		return uuid.Nil, err
	}
	price, lines, err := c.calculator.Quote(venue, len(req.slots), req.extras, catalog)
	if err != nil {
		return uuid.Nil, err
	}

	shares := revenue.Split(price.Total, c.feeRate)
	price = price.WithSplit(shares)

	res, err := reservation.NewReservation(reservation.NewParams{
		CustomerID:    customerID,
		ArenaID:       arenaID,
		Date:          req.date,
		Slots:         req.slots,
		Extras:        lines,
		Price:         price,
		PaymentMethod: req.method,
	}, now)
	if err != nil {
		return uuid.Nil, err
	}

	operatorID := venue.OperatorID()
	platformID := c.platform.PlatformAccountID()

	accounts, err := ledger.Acquire(ctx, tx, now,
		ledger.Payer(customerID),
		ledger.Account(operatorID),
		ledger.Account(platformID),
	)
	if err != nil {
		return uuid.Nil, err
	}
	payer, err := accounts.Wallet(customerID)
	if err != nil {
		return uuid.Nil, err
	}
	if !payer.CanCover(price.Total) {
		return uuid.Nil, errs.Wrapf(wallet.ErrInsufficientFunds, "balance %s < total %s", payer.Balance(), price.Total)
	}

	if err := availability.ReserveSlots(ctx, tx, res.ID(), req.date, req.slots); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
		return uuid.Nil, err
	}

	if err := accounts.Lock(ctx, customerID, shares.Player); err != nil {
		return uuid.Nil, err
	}
	if err := addHeldIfPositive(ctx, accounts, operatorID, shares.Operator); err != nil {
		return uuid.Nil, err
	}
	if err := addHeldIfPositive(ctx, accounts, platformID, shares.Platform); err != nil {
		return uuid.Nil, err
	}

	refID := res.ID()
	if _, err := accounts.Record(ctx, customerID, ledger.Entry{
		Amount:      shares.Player,
		Type:        wallet.TypePayment,
		Stage:       wallet.StageHold,
		ReferenceID: &refID,
		Note:        "reservation hold",
	}); err != nil {
		return uuid.Nil, err
	}

	if err := c.scheduler.Schedule(ctx, tx, res.ID(), venue.SettlementTime(req.date), price.Total, now); err != nil {
		return uuid.Nil, err
	}
	if err := enqueueReservationEvent(ctx, tx, res, now); err != nil {
		return uuid.Nil, err
	}
	return res.ID(), nil
}

func (c *reservationCommandsImpl) loadArena(ctx context.Context, tx shared.Tx, arenaID uuid.UUID) (*arena.Arena, error) {
	snap, err := tx.Reads().ArenaByID(ctx, arenaID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(arena.ErrArenaNotActive, "arena %s not found", arenaID)
		}
		return nil, err
	}
	return snap.ToDomain()
}

func (c *reservationCommandsImpl) loadExtras(
	ctx context.Context,
	tx shared.Tx,
	arenaID uuid.UUID,
	reqs []reservation.ExtraRequest,
) (map[uuid.UUID]arena.Extra, error) {
	if len(reqs) == 0 {
		return map[uuid.UUID]arena.Extra{}, nil
	}
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ExtraID
	}
	extras, err := tx.Reads().ExtrasByIDs(ctx, arenaID, ids)
	if err != nil {
		return nil, err
	}
	catalog := make(map[uuid.UUID]arena.Extra, len(extras))
	for _, e := range extras {
		catalog[e.ID] = e
	}
	return catalog, nil
}

func (c *reservationCommandsImpl) SettleReservation(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := res.Confirm(now); err != nil {
			return err
		}

		hold, err := c.openHold(ctx, tx, reservationID, ErrNoHeldTransaction)
		if err != nil {
			return err
		}

		m, err := c.acquireParties(ctx, tx, res, now)
		if err != nil {
			return err
		}

		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res, reservation.StatusHold); err != nil {
			return err
		}
		if err := tx.WalletTransactions().Close(ctx, tx.DB(), hold.ID(), wallet.StageProcessed); err != nil {
			return err
		}

		if err := m.accounts.Unlock(ctx, m.payer, m.shares.Player); err != nil {
			return err
		}
		if err := releaseIfPositive(ctx, m.accounts, m.operator, m.shares.Operator); err != nil {
			return err
		}
		if err := releaseIfPositive(ctx, m.accounts, m.platform, m.shares.Platform); err != nil {
			return err
		}

		legs := []leg{
			{owner: m.payer, amount: m.shares.Player, txType: wallet.TypePayment},
			{owner: m.operator, amount: m.shares.Operator, txType: wallet.TypeDeposit},
			{owner: m.platform, amount: m.shares.Platform, txType: wallet.TypeFee},
		}
		if err := recordLegs(ctx, m.accounts, legs, wallet.StageSettled, reservationID, "reservation settled"); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateSettlement)
			}
			return err
		}

		return enqueueReservationEvent(ctx, tx, res, now)
	})
}

func (c *reservationCommandsImpl) CancelReservation(
	ctx context.Context,
	reservationID uuid.UUID,
	requestor uuid.UUID,
) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := res.Cancel(requestor, now); err != nil {
			return err
		}

		hold, err := c.openHold(ctx, tx, reservationID, ErrAlreadyProcessed)
		if err != nil {
			return err
		}

		m, err := c.acquireParties(ctx, tx, res, now)
		if err != nil {
			return err
		}

		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res, reservation.StatusHold); err != nil {
			return err
		}
		if err := availability.CancelSlots(ctx, tx, reservationID, now); err != nil {
			return err
		}
		if err := tx.Reservations().CancelExtras(ctx, tx.DB(), reservationID, now); err != nil {
			return err
		}
		if err := tx.WalletTransactions().Close(ctx, tx.DB(), hold.ID(), wallet.StageProcessed); err != nil {
			return err
		}

		if err := m.accounts.Release(ctx, m.payer, m.shares.Player); err != nil {
			return err
		}
		if err := removeHeldIfPositive(ctx, m.accounts, m.operator, m.shares.Operator); err != nil {
			return err
		}
		if err := removeHeldIfPositive(ctx, m.accounts, m.platform, m.shares.Platform); err != nil {
			return err
		}

		legs := []leg{
			{owner: m.payer, amount: m.shares.Player, txType: wallet.TypeRefund},
			{owner: m.operator, amount: m.shares.Operator, txType: wallet.TypeRefund},
			{owner: m.platform, amount: m.shares.Platform, txType: wallet.TypeFee},
		}
		if err := recordLegs(ctx, m.accounts, legs, wallet.StageRefund, reservationID, "reservation canceled"); err != nil {
			return err
		}

		return enqueueReservationEvent(ctx, tx, res, now)
	})
	if err != nil {
		return nil, err
	}

	c.unscheduleSettlement(ctx, reservationID)

	return c.reader.GetByID(ctx, requestor, user.RoleCustomer, reservationID)
}

// unscheduleSettlement runs after the cancel commit. A leftover job is
// harmless: settling a canceled reservation ends as a no-op.
func (c *reservationCommandsImpl) unscheduleSettlement(ctx context.Context, reservationID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := c.scheduler.Unschedule(ctx, tx, reservationID)
		return err
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to unschedule settlement",
			"reservation_id", reservationID,
			"error", err,
		)
	}
}

func (c *reservationCommandsImpl) lockReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return res, nil
}

func (c *reservationCommandsImpl) openHold(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, missing error) (*wallet.Transaction, error) {
	hold, err := tx.WalletTransactions().FindOpenByReferenceForUpdate(ctx, tx.DB(), reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(missing, "reservation %s", reservationID)
		}
		return nil, err
	}
	return hold, nil
}

// movement is the locked set of wallets and the split stored at creation.
type movement struct {
	accounts *ledger.Accounts
	shares   revenue.Shares
	payer    uuid.UUID
	operator uuid.UUID
	platform uuid.UUID
}

func (c *reservationCommandsImpl) acquireParties(ctx context.Context, tx shared.Tx, res *reservation.Reservation, now time.Time) (*movement, error) {
	snap, err := tx.Reads().ArenaByID(ctx, res.ArenaID())
	if err != nil {
		return nil, err
	}
	m := &movement{
		shares:   res.Price().Shares(),
		payer:    res.CustomerID(),
		operator: snap.OperatorID,
		platform: c.platform.PlatformAccountID(),
	}
	m.accounts, err = ledger.Acquire(ctx, tx, now,
		ledger.Account(m.payer),
		ledger.Account(m.operator),
		ledger.Account(m.platform),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

type leg struct {
	owner  uuid.UUID
	amount decimal.Decimal
	txType wallet.Type
}

// recordLegs writes one entry per leg. Zero legs, such as the platform fee at
// a 0% rate, leave no entry since ledger amounts are always positive.
func recordLegs(ctx context.Context, accounts *ledger.Accounts, legs []leg, stage wallet.Stage, reservationID uuid.UUID, note string) error {
	for _, l := range legs {
		if !l.amount.IsPositive() {
			continue
		}
		ref := reservationID
		if _, err := accounts.Record(ctx, l.owner, ledger.Entry{
			Amount:      l.amount,
			Type:        l.txType,
			Stage:       stage,
			ReferenceID: &ref,
			Note:        note,
		}); err != nil {
			return err
		}
	}
	return nil
}

func addHeldIfPositive(ctx context.Context, a *ledger.Accounts, owner uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	return a.AddHeld(ctx, owner, amount)
}

func releaseIfPositive(ctx context.Context, a *ledger.Accounts, owner uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	return a.Release(ctx, owner, amount)
}

func removeHeldIfPositive(ctx context.Context, a *ledger.Accounts, owner uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	return a.RemoveHeld(ctx, owner, amount)
}

func calculateRequestHash(in CreateReservationInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
