package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, 10000, cfg.Ops)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "sequential", cfg.Mode)
	assert.Equal(t, 5, cfg.Repetitions)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REDBENCH_ADDR", "redis.internal:6380")
	t.Setenv("REDBENCH_OPS", "20000")
	t.Setenv("REDBENCH_WORKERS", "100")
	t.Setenv("REDBENCH_MODE", "pipelined")
	t.Setenv("REDBENCH_DIAL_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", cfg.Addr)
	assert.Equal(t, 20000, cfg.Ops)
	assert.Equal(t, 100, cfg.Workers)
	assert.Equal(t, "pipelined", cfg.Mode)
	assert.Equal(t, 2*time.Second, cfg.DialTimeout)
}
