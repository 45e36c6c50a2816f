package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	cfg := &AppConfig{SendRateLimitPerSec: 0.01, SendRateBurst: 2}

	t.Run("Burst then wait", func(t *testing.T) {
		rl := NewRateLimiter(cfg)

		ok, _ := rl.Allow("s1")
		assert.True(t, ok)
		ok, _ = rl.Allow("s1")
		assert.True(t, ok)

		ok, wait := rl.Allow("s1")
		assert.False(t, ok)
		assert.Greater(t, wait, time.Duration(0))
	})

	t.Run("Sessions do not share buckets", func(t *testing.T) {
		rl := NewRateLimiter(cfg)
		rl.Allow("s1")
		rl.Allow("s1")

		ok, _ := rl.Allow("s2")
		assert.True(t, ok)
		assert.Equal(t, 2, rl.Len())
	})

	t.Run("Forget resets the session", func(t *testing.T) {
		rl := NewRateLimiter(cfg)
		rl.Allow("s1")
		rl.Allow("s1")
		rl.Forget("s1")
		assert.Equal(t, 0, rl.Len())

		ok, _ := rl.Allow("s1")
		assert.True(t, ok)
	})

	t.Run("Burst below one is raised", func(t *testing.T) {
		rl := NewRateLimiter(&AppConfig{SendRateLimitPerSec: 0.01})
		ok, _ := rl.Allow("s1")
		assert.True(t, ok)
	})
}
