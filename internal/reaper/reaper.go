package reaper

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// Reaper cancels pending bookings whose payment window lapsed without a
// completion event, so abandoned checkouts cannot hold a slot forever.
// The gateway's session-expired webhook drives the same transition; the
// sweep covers notifications that never arrive.
type Reaper struct {
	db       *gorm.DB
	ttl      time.Duration
	interval time.Duration
	log      *zap.Logger
}

func New(db *gorm.DB, ttl time.Duration, log *zap.Logger) *Reaper {
	return &Reaper{
		db:       db,
		ttl:      ttl,
		interval: time.Minute,
		log:      log,
	}
}

func (r *Reaper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

func (r *Reaper) sweep() {
	now := time.Now()
	cutoff := now.Add(-r.ttl)

	res := r.db.Model(&models.Booking{}).
		Where("status = ? AND created_at < ?", string(domain.StatusPending), cutoff).
		Updates(map[string]any{
			"status":       string(domain.StatusCancelled),
			"cancelled_at": now,
		})

	if res.Error != nil {
		r.log.Error("pending booking sweep failed", zap.Error(res.Error))
		return
	}

	if res.RowsAffected > 0 {
		r.log.Info("cancelled stale pending bookings",
			zap.Int64("count", res.RowsAffected),
		)
	}
}
