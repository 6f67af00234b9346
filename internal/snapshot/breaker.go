package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures BreakerStore.
type BreakerSettings struct {
	Name                string
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// BreakerStore stops calling a failing backend for a while so a dead Redis or Mongo
// does not add its timeout to every cart mutation.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[[]byte]
}

func NewBreakerStore(next Store, settings BreakerSettings, log *slog.Logger) *BreakerStore {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}
	if settings.OpenTimeout == 0 {
		settings.OpenTimeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("snapshot breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) Load(ctx context.Context, key string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		return b.next.Load(ctx, key)
	})
}

func (b *BreakerStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Save(ctx, key, data)
	})
	return err
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Delete(ctx, key)
	})
	return err
}

// State exposes the breaker state for health reporting.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}
