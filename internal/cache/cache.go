package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// EventDeduper records gateway webhook event ids so replayed notifications
// can be acknowledged without re-processing.
type EventDeduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewEventDeduper(rdb *redis.Client) *EventDeduper {
	return &EventDeduper{
		rdb: rdb,
		ttl: 24 * time.Hour,
	}
}

// FirstSeen reports whether this event id has not been processed before.
// A redis failure counts as first-seen: the booking state machine is the
// authoritative idempotency guard, this is only a fast path.
func (d *EventDeduper) FirstSeen(ctx context.Context, eventID string) bool {
	ok, err := d.rdb.SetNX(ctx, "webhook:event:"+eventID, 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Forget releases an event id recorded by FirstSeen. Called when processing
// fails after the id was claimed, so the gateway's retry of the same event
// is not acknowledged as a duplicate.
func (d *EventDeduper) Forget(ctx context.Context, eventID string) {
	d.rdb.Del(ctx, "webhook:event:"+eventID)
}
