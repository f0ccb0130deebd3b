package marketdata

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is the opaque cancellation capability returned by every
// subscribe call. The owner must call Stop exactly once before the owning
// view is torn down or replaced; Stop is idempotent so a duplicate call is
// harmless rather than a panic.
type Subscription struct {
	ID    uuid.UUID
	topic string
	stop  func()
	once  sync.Once
}

func NewSubscription(topic string, stop func()) *Subscription {
	return &Subscription{
		ID:    uuid.New(),
		topic: topic,
		stop:  stop,
	}
}

func (s *Subscription) Topic() string {
	return s.topic
}

func (s *Subscription) Stop() {
	s.once.Do(s.stop)
}
