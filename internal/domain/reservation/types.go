package reservation

type Status string

const (
	StatusHold      Status = "hold"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusConfirmed, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCanceled
}

type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodWallet
}
