package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeaudit/internal/config"
)

func breakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      2,
		FailureThreshold: 0.5,
	}
}

func TestBreaker_Disabled(t *testing.T) {
	cfg := breakerConfig()
	cfg.Enabled = false

	assert.Nil(t, NewGenerateBreaker("advise", cfg, testLogger))

	b := newBreaker[*struct{}]("AI-advise", cfg, ratioTrip(1, 0.1), testLogger)
	assert.Nil(t, b)
	assert.True(t, b.IsHealthy())
	assert.Equal(t, map[string]any{"enabled": false}, b.Stats())

	calls := 0
	for range 5 {
		_, err := b.Execute(func() (*struct{}, error) { calls++; return nil, errors.New("down") })
		assert.Error(t, err)
	}
	assert.Equal(t, 5, calls)
}

func TestBreaker_TripsOnFailureRatio(t *testing.T) {
	b := newBreaker[int]("AI-advise", breakerConfig(), ratioTrip(2, 0.5), testLogger)
	require.NotNil(t, b)

	stats := b.Stats()
	assert.Equal(t, "AI-advise", stats["name"])
	assert.Equal(t, "closed", stats["state"])

	v, err := b.Execute(func() (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = b.Execute(func() (int, error) { return 0, errors.New("503") })
	assert.Error(t, err)
	assert.False(t, b.IsHealthy())

	called := false
	_, err = b.Execute(func() (int, error) { called = true; return 0, nil })
	assert.Error(t, err)
	assert.False(t, called)
}

func TestBreaker_Names(t *testing.T) {
	cfg := breakerConfig()
	assert.Equal(t, "AI-advise", NewGenerateBreaker("advise", cfg, nil).Stats()["name"])
	assert.Equal(t, "AI-Model-advise", NewModelBreaker("advise", cfg, nil).Stats()["name"])
}

func TestRatioTrip(t *testing.T) {
	trip := ratioTrip(3, 0.6)
	tests := []struct {
		requests, failures uint32
		want               bool
	}{
		{0, 0, false},
		{2, 2, false},
		{3, 1, false},
		{3, 2, true},
		{10, 6, true},
		{10, 5, false},
	}
	for _, tt := range tests {
		got := trip(countsOf(tt.requests, tt.failures))
		assert.Equal(t, tt.want, got, "requests=%d failures=%d", tt.requests, tt.failures)
	}
}
