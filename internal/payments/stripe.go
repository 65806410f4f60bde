package payments

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
)

type StripeGateway struct {
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret}
}

func (g *StripeGateway) CreateCheckoutSession(
	ctx context.Context,
	in domain.CheckoutInput,
) (*domain.CheckoutSession, error) {

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(in.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", in.BookingID)

	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{
		ID:  s.ID,
		URL: s.URL,
	}, nil
}

// VerifyEvent checks the gateway signature before any payload field is
// trusted. An unverifiable notification never reaches the state machine.
func (g *StripeGateway) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
}

// Compile-time check
var _ domain.PaymentGateway = (*StripeGateway)(nil)
