package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid default", DefaultConfig(), false},
		{"zero max failures", Config{MaxFailures: 0, Timeout: time.Second, MaxConcurrentRequests: 1}, true},
		{"zero timeout", Config{MaxFailures: 1, Timeout: 0, MaxConcurrentRequests: 1}, true},
		{"zero half-open requests", Config{MaxFailures: 1, Timeout: time.Second, MaxConcurrentRequests: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	b := New("test", DefaultConfig(), nil)

	result, err := b.Execute(func() (interface{}, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.False(t, b.IsOpen())
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cfg := Config{MaxFailures: 2, Timeout: time.Minute, MaxConcurrentRequests: 1}
	b := New("test", cfg, nil)

	boom := errors.New("provider down")
	for i := 0; i < 2; i++ {
		_, err := b.Execute(func() (interface{}, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.True(t, b.IsOpen())

	_, err := b.Execute(func() (interface{}, error) {
		t.Fatal("function must not run while circuit is open")
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cfg := Config{MaxFailures: 2, Timeout: time.Minute, MaxConcurrentRequests: 1}
	b := New("test", cfg, nil)

	boom := errors.New("flaky")
	_, _ = b.Execute(func() (interface{}, error) { return nil, boom })
	_, _ = b.Execute(func() (interface{}, error) { return nil, nil })
	_, _ = b.Execute(func() (interface{}, error) { return nil, boom })

	assert.False(t, b.IsOpen())
}
