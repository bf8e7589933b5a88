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

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 40, cfg.Partner.PageSize)
	assert.Equal(t, 40, cfg.Partner.Concurrency)
	assert.Equal(t, 3, cfg.Partner.RetryAttempts)
	assert.Equal(t, 10, cfg.Partner.ProgressEvery)
	assert.Equal(t, 5, cfg.Business.Concurrency)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Scheduler.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PARTNER_PAGE_SIZE", "25")
	t.Setenv("BUSINESS_CONCURRENCY", "3")
	t.Setenv("SCHEDULER_ENABLED", "true")
	t.Setenv("SCHEDULER_OWNERS", "u1,u2")
	t.Setenv("PSQL_MAX_CONNS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Partner.PageSize)
	assert.Equal(t, 3, cfg.Business.Concurrency)
	assert.Equal(t, []string{"u1", "u2"}, cfg.Scheduler.Owners)
	assert.Equal(t, int32(8), cfg.Psql.MaxConns)
}

func TestLoadRejectsOversizedPages(t *testing.T) {
	t.Setenv("PARTNER_PAGE_SIZE", "100")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PARTNER_PAGE_SIZE")
}

func TestValidateScheduler(t *testing.T) {
	t.Setenv("SCHEDULER_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULER_OWNERS")
}
