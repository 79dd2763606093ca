package ai

import (
	"fmt"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"resumeaudit/internal/config"
	"resumeaudit/internal/errors"
)

// Breaker wraps calls returning T with a circuit breaker. A nil Breaker
// runs calls directly.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// newBreaker returns nil when the breaker is disabled
func newBreaker[T any](name string, cfg config.CircuitBreakerConfig, readyToTrip func(gobreaker.Counts) bool, logger *errors.Logger) *Breaker[T] {
	if !cfg.Enabled {
		return nil
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}
	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// ratioTrip trips once MinRequests have been seen and the failure ratio
// reaches the threshold
func ratioTrip(minRequests uint32, threshold float64) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests == 0 {
			return false
		}
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequests && failureRatio >= threshold
	}
}

// NewGenerateBreaker guards content generation for one operation
func NewGenerateBreaker(operation string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *Breaker[*genai.GenerateContentResponse] {
	return newBreaker[*genai.GenerateContentResponse](fmt.Sprintf("AI-%s", operation), cfg,
		ratioTrip(cfg.MinRequests, cfg.FailureThreshold), logger)
}

// NewModelBreaker guards model lookups. Health checks are less critical, so
// the breaker trips only on a sustained failure rate.
func NewModelBreaker(operation string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *Breaker[*genai.Model] {
	return newBreaker[*genai.Model](fmt.Sprintf("AI-Model-%s", operation), cfg, ratioTrip(5, 0.8), logger)
}

// Execute runs fn through the breaker
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats reports breaker name, state and counts
func (b *Breaker[T]) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy reports whether the breaker is closed
func (b *Breaker[T]) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
