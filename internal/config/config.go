package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const (
	defaultUserCount             = 100
	defaultTrackingInterval      = 5 * time.Minute
	defaultProximityRadiusMiles  = 10.0
	defaultNearbyAttractionCount = 5
	defaultOracleRefillPerSecond = 1000
	defaultOracleBurstSize       = 1000
	defaultOracleCacheTTL        = 24 * time.Hour
)

type Config struct {
	userCount             int
	batchSize             int
	poolSize              int
	trackingInterval      time.Duration
	proximityRadiusMiles  float64
	nearbyAttractionCount int
	sentryDSN             string
	env                   environment
}

func (c *Config) UserCount() int {
	return c.userCount
}

// BatchSize returns the configured batch size, or 0 when the scheduler should
// derive it from the user count.
func (c *Config) BatchSize() int {
	return c.batchSize
}

// PoolSize returns the configured pool size, or 0 when the scheduler should
// derive it from the available hardware parallelism.
func (c *Config) PoolSize() int {
	return c.poolSize
}

func (c *Config) TrackingInterval() time.Duration {
	return c.trackingInterval
}

func (c *Config) ProximityRadiusMiles() float64 {
	return c.proximityRadiusMiles
}

func (c *Config) NearbyAttractionCount() int {
	return c.nearbyAttractionCount
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) OracleRefillPerSecond() int {
	return defaultOracleRefillPerSecond
}

func (c *Config) OracleBurstSize() int {
	return defaultOracleBurstSize
}

func (c *Config) OracleCacheTTL() time.Duration {
	return defaultOracleCacheTTL
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, userCount: %d, batchSize: %d, poolSize: %d, trackingInterval: %s, proximityRadiusMiles: %.1f, nearbyAttractionCount: %d, ...}",
		string(c.env), c.userCount, c.batchSize, c.poolSize, c.trackingInterval, c.proximityRadiusMiles, c.nearbyAttractionCount,
	)
}

func intFromEnv(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, raw)
	}
	return value, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, raw)
	}
	return value, nil
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("TOURGUIDE_ENVIRONMENT")
	if !ok {
		return missingKey("TOURGUIDE_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: TOURGUIDE_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}

	userCount, err := intFromEnv("TOURGUIDE_USER_COUNT", defaultUserCount)
	if err != nil {
		return Config{}, err
	}

	batchSize, err := intFromEnv("TOURGUIDE_BATCH_SIZE", 0)
	if err != nil {
		return Config{}, err
	}

	poolSize, err := intFromEnv("TOURGUIDE_POOL_SIZE", 0)
	if err != nil {
		return Config{}, err
	}

	trackingIntervalSeconds, err := intFromEnv("TOURGUIDE_TRACKING_INTERVAL_SECONDS", int(defaultTrackingInterval/time.Second))
	if err != nil {
		return Config{}, err
	}
	// The tracker's ticker requires a positive interval.
	if trackingIntervalSeconds == 0 {
		return Config{}, fmt.Errorf("%w: TOURGUIDE_TRACKING_INTERVAL_SECONDS (0)", ErrInvalidValue)
	}

	proximityRadiusMiles, err := floatFromEnv("TOURGUIDE_PROXIMITY_RADIUS_MILES", defaultProximityRadiusMiles)
	if err != nil {
		return Config{}, err
	}

	nearbyAttractionCount, err := intFromEnv("TOURGUIDE_NEARBY_ATTRACTION_COUNT", defaultNearbyAttractionCount)
	if err != nil {
		return Config{}, err
	}

	sentryDSN := os.Getenv("SENTRY_DSN")

	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		userCount:             userCount,
		batchSize:             batchSize,
		poolSize:              poolSize,
		trackingInterval:      time.Duration(trackingIntervalSeconds) * time.Second,
		proximityRadiusMiles:  proximityRadiusMiles,
		nearbyAttractionCount: nearbyAttractionCount,
		sentryDSN:             sentryDSN,
		env:                   env,
	}, nil
}
