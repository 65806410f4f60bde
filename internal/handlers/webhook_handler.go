package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/logger"
	"github.com/AmberStudioApps/studio-booking/internal/payments"
	ucBooking "github.com/AmberStudioApps/studio-booking/internal/usecase/booking"
)

const maxWebhookBody = 1 << 20 // 1 MiB hard cap

// EventDeduper is the replay guard for gateway notifications. FirstSeen
// claims an event id; Forget releases a claim whose processing failed.
type EventDeduper interface {
	FirstSeen(ctx context.Context, eventID string) bool
	Forget(ctx context.Context, eventID string)
}

type WebhookHandler struct {
	gateway *payments.StripeGateway
	confirm *ucBooking.ConfirmPayment
	expire  *ucBooking.ExpirePayment
	dedup   EventDeduper
}

func NewWebhookHandler(
	gateway *payments.StripeGateway,
	confirm *ucBooking.ConfirmPayment,
	expire *ucBooking.ExpirePayment,
	dedup EventDeduper,
) *WebhookHandler {
	return &WebhookHandler{
		gateway: gateway,
		confirm: confirm,
		expire:  expire,
		dedup:   dedup,
	}
}

// HandleStripe processes gateway notifications. Signature failures are the
// only 4xx; once an event is verified the handler acknowledges with 200 even
// for bookings it no longer recognizes, so the gateway does not retry-storm
// over states already resolved. 5xx is reserved for store failures, which
// the gateway retries with backoff.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	log := logger.L()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Failed to read webhook body.")
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if sig == "" {
		httperr.BadRequest(c, "missing_signature", "Missing Stripe-Signature header.")
		return
	}

	evt, err := h.gateway.VerifyEvent(body, sig)
	if err != nil {
		log.Warn("webhook signature verification failed", zap.Error(err))
		httperr.BadRequest(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	h.process(c, evt)
}

// process applies a verified event. A store failure releases the dedup claim
// before answering 5xx: the gateway's retry must be processed, not swallowed
// as a duplicate of an event that was never applied.
func (h *WebhookHandler) process(c *gin.Context, evt stripe.Event) {
	log := logger.L()
	ctx := c.Request.Context()

	if !h.dedup.FirstSeen(ctx, evt.ID) {
		log.Info("duplicate webhook event ignored", zap.String("event_id", evt.ID))
		c.JSON(http.StatusOK, gin.H{"received": true, "status": "duplicate"})
		return
	}

	switch string(evt.Type) {

	case "checkout.session.completed":
		bookingID, ok := sessionBookingID(evt, log)
		if !ok {
			break
		}

		if _, err := h.confirm.Execute(ctx, bookingID); err != nil {
			if httperr.IsBusiness(err, "booking_not_found") || httperr.IsBusiness(err, "invalid_state") {
				log.Warn("payment completed for unconfirmable booking",
					zap.String("booking_id", bookingID),
					zap.Error(err),
				)
				break
			}
			h.dedup.Forget(ctx, evt.ID)
			httperr.Internal(c, "webhook_failed", "Failed to apply payment completion.")
			return
		}

		log.Info("booking confirmed by payment",
			zap.String("booking_id", bookingID),
			zap.String("event_id", evt.ID),
		)

	case "checkout.session.expired":
		bookingID, ok := sessionBookingID(evt, log)
		if !ok {
			break
		}

		if _, err := h.expire.Execute(ctx, bookingID); err != nil {
			if httperr.IsBusiness(err, "booking_not_found") {
				break
			}
			h.dedup.Forget(ctx, evt.ID)
			httperr.Internal(c, "webhook_failed", "Failed to apply session expiry.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func sessionBookingID(evt stripe.Event, log *zap.Logger) (string, bool) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		log.Warn("invalid checkout session payload", zap.String("event_id", evt.ID), zap.Error(err))
		return "", false
	}

	bookingID := session.Metadata["booking_id"]
	if bookingID == "" {
		log.Warn("checkout session without booking_id metadata", zap.String("event_id", evt.ID))
		return "", false
	}

	return bookingID, true
}
