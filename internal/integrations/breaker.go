// Package integrations holds the clients for third-party providers. Every
// client goes through a Breaker so an outage upstream fails fast instead of
// piling up requests.
package integrations

import (
	"errors"
	"time"

	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned while a breaker is open.
var ErrUnavailable = errors.New("upstream temporarily unavailable")

// UpstreamError carries the HTTP status a provider answered with.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Err.Error()
	}
	return e.Provider + ": unexpected status"
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Breaker wraps provider calls with a circuit breaker.
type Breaker[T any] struct {
	name string
	cb   *gobreaker.CircuitBreaker[T]
}

// NewBreaker opens after a 60% failure rate over at least 10 requests in a
// one minute window, and probes again after two minutes. isSuccessful may
// classify expected errors (such as a 404) as successes; nil counts every
// error as a failure.
func NewBreaker[T any](name string, isSuccessful func(error) bool) *Breaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= 0.6 {
				logger.Warn("Opening circuit", "breaker", name, "failures", counts.TotalFailures, "failure_rate", ratio)
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit breaker state transition", "breaker", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: isSuccessful,
	}

	return &Breaker[T]{name: name, cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn through the breaker. A rejected call returns ErrUnavailable.
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logger.Warn("Circuit breaker rejected request", "breaker", b.name, "error", err)
			var zero T
			return zero, ErrUnavailable
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return result, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

func (b *Breaker[T]) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
