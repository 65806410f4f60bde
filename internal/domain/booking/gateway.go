package booking

import "context"

type CheckoutInput struct {
	BookingID     string // correlation token carried through the gateway
	Description   string
	AmountMinor   int64
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	CreateCheckoutSession(
		ctx context.Context,
		in CheckoutInput,
	) (*CheckoutSession, error)
}
