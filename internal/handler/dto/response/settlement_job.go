package response

import (
	"time"

	"arena-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SettlementJobResponse struct {
	ID            string     `json:"id"`
	ReservationID uuid.UUID  `json:"reservationId"`
	RunAt         time.Time  `json:"runAt"`
	Attempts      int32      `json:"attempts"`
	MaxAttempts   int32      `json:"maxAttempts"`
	Status        string     `json:"status"`
	LastError     *string    `json:"lastError,omitempty"`
	LockedAt      *time.Time `json:"lockedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func FromSettlementJobViews(jobs []*queries.SettlementJobView) ([]SettlementJobResponse, error) {
	res := make([]SettlementJobResponse, 0, len(jobs))
	if err := copier.Copy(&res, jobs); err != nil {
		return nil, err
	}
	return res, nil
}

func FromSettlementJobView(v *queries.SettlementJobView) (*SettlementJobResponse, error) {
	res := &SettlementJobResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}
