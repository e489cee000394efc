package audio

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"codeberg.org/awtza/phrasebook/internal/logger"
)

// BreakerSynthesizer stops calling a failing provider after a run of
// consecutive failures, so the remaining requests fail fast
type BreakerSynthesizer struct {
	next    Synthesizer
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerSynthesizer wraps next with a circuit breaker that opens after
// maxFailures consecutive failures
func NewBreakerSynthesizer(next Synthesizer, maxFailures uint32, log *logger.Logger) *BreakerSynthesizer {
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled run says nothing about the provider
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("audio provider circuit changed state", "provider", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerSynthesizer{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize forwards to the wrapped provider unless the circuit is open
func (b *BreakerSynthesizer) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Synthesize(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w", b.next.Name(), err)
		}
		return nil, err
	}
	return result.([]byte), nil
}

// Name returns the wrapped provider name
func (b *BreakerSynthesizer) Name() string {
	return b.next.Name()
}

// IsAvailable reports an open circuit as unavailable
func (b *BreakerSynthesizer) IsAvailable() error {
	if b.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%s: %w", b.next.Name(), gobreaker.ErrOpenState)
	}
	return b.next.IsAvailable()
}

// Close releases the wrapped provider
func (b *BreakerSynthesizer) Close() error {
	return Close(b.next)
}
