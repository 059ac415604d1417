package clients

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfileKey(t *testing.T) {
	assert.Equal(t, "reviewtopics:profile:Cafe X", ProfileKey("Cafe X"))
}

func TestGetValkeyConfig(t *testing.T) {
	t.Setenv("VALKEY_INIT_ADDRESS", "localhost:6379")
	t.Setenv("VALKEY_TLS", "true")
	t.Setenv("CACHE_TTL", "90s")

	cfg := GetValkeyConfig()
	assert.Equal(t, "localhost:6379", cfg.Address)
	assert.True(t, cfg.UseTLS)
	assert.Equal(t, 90*time.Second, cfg.TTL)

	t.Setenv("CACHE_TTL", "soon")
	assert.Equal(t, defaultProfileTTL, GetValkeyConfig().TTL)
}

func TestGetAWSSettings(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_ENDPOINT", "http://localhost:8000")

	cfg := GetAWSSettings()
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
}

func TestTTLMillis(t *testing.T) {
	assert.Equal(t, int64(500), ttlMillis(500*time.Millisecond))
	assert.Equal(t, int64(1), ttlMillis(200*time.Microsecond))
	assert.Equal(t, int64(600000), ttlMillis(10*time.Minute))
}

func TestWaitRetry(t *testing.T) {
	assert.NoError(t, WaitRetry(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := WaitRetry(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
