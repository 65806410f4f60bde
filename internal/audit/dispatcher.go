package audit

import (
	"go.uber.org/zap"

	"github.com/AmberStudioApps/studio-booking/internal/logger"
)

type Entry struct {
	AdminID  *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Sink interface {
	Write(e Entry) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Entry
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Entry, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for e := range d.queue {
		if err := d.sink.Write(e); err != nil {
			logger.L().Warn("audit write failed",
				zap.String("action", e.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(e Entry) {
	select {
	case d.queue <- e:
	default:
		// full queue: drop the entry, never block a request on auditing
		logger.L().Warn("audit queue full, dropping event",
			zap.String("action", e.Action),
		)
	}
}
