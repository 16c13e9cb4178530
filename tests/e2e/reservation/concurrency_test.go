//go:build e2e

package reservation_test

import (
	"context"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"

	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/handler/dto/response"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/settlement"
	"arena-booking/tests/common/builder"
	"arena-booking/tests/common/dbtest"
	"arena-booking/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const parallelBookers = 8

func (s *ReservationSuite) bookAs(a actors, token string, key uuid.UUID, hours ...int) *nethttptest.ResponseRecorder {
	body := builder.NewReservationBuilder().
		WithArena(a.arena.ID).
		WithDate(bookingDate()).
		WithSlots(a.arena.Courts[0], hours...).
		BuildCreateRequestDTO()
	return httptest.PerformRequestWithHeaders(s.T(), s.App.Router, http.MethodPost, reservationsURL, body, token,
		httptest.Idempotent(key))
}

// moneyTotal sums balance and held across owners.
func (s *ReservationSuite) moneyTotal(owners ...uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, id := range owners {
		b, h := dbtest.WalletAmounts(s.T(), s.DB, id)
		sum = sum.Add(b).Add(h)
	}
	return sum
}

func (s *ReservationSuite) TestConcurrentBooking() {
	s.Run("parallel requests for one slot yield a single hold", func() {
		a := s.seed()

		tokens := make([]string, parallelBookers)
		owners := []uuid.UUID{a.operator, s.App.Config.Ledger.PlatformAccountID}
		for i := range tokens {
			id := dbtest.CreateTestUser(s.T(), s.DB, fmt.Sprintf("booker%d@example.com", i), string(user.RoleCustomer))
			dbtest.FundWallet(s.T(), s.DB, id, "500")
			tokens[i] = s.jwt.GenerateToken(s.T(), id, user.RoleCustomer)
			owners = append(owners, id)
		}
		before := s.moneyTotal(owners...)

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			recs  = make([]*nethttptest.ResponseRecorder, parallelBookers)
		)
		for i := range tokens {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				recs[i] = s.bookAs(a, tokens[i], uuid.New(), 16)
			}(i)
		}
		close(start)
		wg.Wait()

		created := 0
		for _, rec := range recs {
			if rec.Code == http.StatusCreated {
				created++
				continue
			}
			httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "SlotsAlreadyBooked")
		}
		s.Equal(1, created, "exactly one booking wins the slot")

		var live int
		s.Require().NoError(s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM reservation_slots WHERE court_id = $1 AND hour = 16 AND canceled_at IS NULL",
			a.arena.Courts[0]).Scan(&live))
		s.Equal(1, live)

		var holds int
		s.Require().NoError(s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM wallet_transactions WHERE stage = 'hold'").Scan(&holds))
		s.Equal(1, holds, "losers leave no hold entry")

		opBalance, opHeld := dbtest.WalletAmounts(s.T(), s.DB, a.operator)
		s.True(opBalance.IsZero())
		s.Equal("90.00", opHeld.StringFixed(2))
		s.True(before.Equal(s.moneyTotal(owners...)), "money created or destroyed")
	})

	s.Run("settle racing cancel resolves the hold once", func() {
		a := s.seed()
		owners := []uuid.UUID{a.customer, a.operator, s.App.Config.Ledger.PlatformAccountID}

		for round, hour := range []int{8, 9, 10, 11, 12} {
			before := s.moneyTotal(owners...)

			rec := s.book(a, uuid.New(), hour)
			var created response.ReservationResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

			var (
				wg        sync.WaitGroup
				start     = make(chan struct{})
				settleErr error
				cancelRec *nethttptest.ResponseRecorder
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				<-start
				settleErr = s.App.Reservations.SettleReservation(context.Background(), created.ID)
			}()
			go func() {
				defer wg.Done()
				<-start
				cancelRec = httptest.PerformRequest(s.T(), s.App.Router, http.MethodPost,
					reservationsURL+"/"+created.ID.String()+"/cancel", nil, a.customerToken)
			}()
			close(start)
			wg.Wait()

			var status string
			s.Require().NoError(s.DB.QueryRow(context.Background(),
				"SELECT status FROM reservations WHERE id = $1", created.ID).Scan(&status))

			if settleErr == nil {
				httptest.AssertErrorCode(s.T(), cancelRec, http.StatusConflict, "NotInHold")
				s.Equal("confirmed", status, "round %d", round)
			} else {
				s.True(errs.Is(settleErr, reservation.ErrNotInHold), "round %d: %v", round, settleErr)
				s.Equal(http.StatusOK, cancelRec.Code, "round %d: %s", round, cancelRec.Body.String())
				s.Equal("canceled", status, "round %d", round)
			}

			var open int
			s.Require().NoError(s.DB.QueryRow(context.Background(),
				"SELECT count(*) FROM wallet_transactions WHERE reference_id = $1 AND stage = 'hold'", created.ID).Scan(&open))
			s.Zero(open, "round %d leaves no open hold", round)

			_, custHeld := dbtest.WalletAmounts(s.T(), s.DB, a.customer)
			_, opHeld := dbtest.WalletAmounts(s.T(), s.DB, a.operator)
			s.True(custHeld.IsZero(), "round %d customer held %s", round, custHeld)
			s.True(opHeld.IsZero(), "round %d operator held %s", round, opHeld)
			s.True(before.Equal(s.moneyTotal(owners...)), "round %d created or destroyed money", round)
		}
	})

	s.Run("operator booking their own arena settles", func() {
		a := s.seed()
		dbtest.FundWallet(s.T(), s.DB, a.operator, "500")
		token := s.jwt.GenerateToken(s.T(), a.operator, user.RoleOperator)

		rec := s.bookAs(a, token, uuid.New(), 10, 11)
		var created response.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.assertWallet(token, "300.00", "380.00")

		_, err := s.DB.Exec(context.Background(),
			"UPDATE settlement_jobs SET run_at = now() - interval '1 second' WHERE reservation_id = $1", created.ID)
		s.Require().NoError(err)

		result, err := s.App.Worker.ProcessDue(context.Background())
		s.Require().NoError(err)
		s.Equal(1, result.Outcomes[settlement.OutcomeDone])

		s.assertWallet(token, "480.00", "0.00")
		platBalance, _ := dbtest.WalletAmounts(s.T(), s.DB, s.App.Config.Ledger.PlatformAccountID)
		s.Equal("20.00", platBalance.StringFixed(2))

		var settled int
		s.Require().NoError(s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM wallet_transactions WHERE reference_id = $1 AND stage = 'settled'", created.ID).Scan(&settled))
		s.Equal(3, settled, "payment, deposit and fee legs")
	})
}
