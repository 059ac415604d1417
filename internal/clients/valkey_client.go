package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spacesedan/reviewtopics/internal/models"
	"github.com/valkey-io/valkey-go"
)

const (
	VALKEY_PROFILE_KEY_PREFIX = "reviewtopics:profile:"
	defaultProfileTTL         = 10 * time.Minute
	valkeyRetries             = 3
	valkeyRetryDelay          = 250 * time.Millisecond
)

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
	TTL      time.Duration
}

// GetValkeyConfig reads VALKEY_INIT_ADDRESS, VALKEY_PASSWORD, VALKEY_TLS and CACHE_TTL.
func GetValkeyConfig() ValkeyConfig {
	cfg := ValkeyConfig{
		Address:  os.Getenv("VALKEY_INIT_ADDRESS"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		UseTLS:   os.Getenv("VALKEY_TLS") == "true",
		TTL:      defaultProfileTTL,
	}
	if ttl, err := time.ParseDuration(os.Getenv("CACHE_TTL")); err == nil && ttl > 0 {
		cfg.TTL = ttl
	}
	return cfg
}

// ValkeyCache stores computed location profiles as JSON with a TTL.
type ValkeyCache struct {
	Client valkey.Client
	ttl    time.Duration
}

func NewValkeyCache(cfg ValkeyConfig) (*ValkeyCache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ValkeyCache{Client: client, ttl: ttl}, nil
}

func (vc *ValkeyCache) Close() {
	vc.Client.Close()
}

func ProfileKey(location string) string {
	return VALKEY_PROFILE_KEY_PREFIX + location
}

// GetProfile reports found=false on a cache miss.
func (vc *ValkeyCache) GetProfile(ctx context.Context, location string) (models.LocationProfile, bool, error) {
	var profile models.LocationProfile

	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(ProfileKey(location)).Build().Pin(), valkeyRetries)
	raw, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		return profile, false, nil
	}
	if err != nil {
		return profile, false, fmt.Errorf("[ValkeyClient] get profile: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return profile, false, fmt.Errorf("[ValkeyClient] decode profile: %w", err)
	}
	return profile, true, nil
}

func (vc *ValkeyCache) SetProfile(ctx context.Context, profile models.LocationProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("[ValkeyClient] encode profile: %w", err)
	}

	cmd := vc.Client.B().Set().Key(ProfileKey(profile.Location)).Value(string(data)).
		PxMilliseconds(ttlMillis(vc.ttl)).Build().Pin()
	if err := vc.DoWithRetry(ctx, cmd, valkeyRetries).Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] set profile: %w", err)
	}
	return nil
}

// ttlMillis never returns 0; Valkey rejects a SET with a zero expiry.
func ttlMillis(ttl time.Duration) int64 {
	return max(ttl.Milliseconds(), 1)
}

// DoWithRetry re-sends completed, which must be pinned so it survives recycling.
// It stops early when ctx is done and returns the last result.
func (vc *ValkeyCache) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if err := result.Error(); err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		if i == retries-1 || WaitRetry(ctx, valkeyRetryDelay) != nil {
			break
		}
	}

	return result
}

// WaitRetry pauses for delay between attempts, returning ctx's error early
// if it is done first.
func WaitRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
