package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/roampoint/tourguide/internal/adapters/attractioncatalog"
	"github.com/roampoint/tourguide/internal/adapters/locationprovider"
	"github.com/roampoint/tourguide/internal/adapters/rewardoracle"
	"github.com/roampoint/tourguide/internal/adapters/userregistry"
	"github.com/roampoint/tourguide/internal/app"
	"github.com/roampoint/tourguide/internal/config"
	"github.com/roampoint/tourguide/internal/domain"
	"github.com/roampoint/tourguide/internal/logging"
	"github.com/roampoint/tourguide/internal/reporting"
	"github.com/roampoint/tourguide/internal/scheduler"
	"github.com/roampoint/tourguide/internal/telemetry"
	"github.com/roampoint/tourguide/internal/tracker"
)

const simulatedProviderLatency = 50 * time.Millisecond
const simulatedOracleMaxLatency = 100 * time.Millisecond

func main() {
	instanceID := uuid.New().String()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", conf.NonSensitiveString())

	flush, err := reporting.InitOrMock(conf.SentryDSN(), conf.IsDevelopment())
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()

	ctx := logging.AddToContext(context.Background(), logger)

	otelShutdown, err := telemetry.SetupOTelSDK(ctx, "tourguide")
	if err != nil {
		fail("Failed to set up OpenTelemetry", "error", err.Error())
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
		}
	}()

	catalog := attractioncatalog.NewStatic(conf.ProximityRadiusMiles())
	attractions, err := catalog.GetAttractions(ctx)
	if err != nil {
		fail("Failed to load attraction catalog", "error", err.Error())
	}
	logger.Info("Loaded attraction catalog", "attractions", len(attractions))

	locationProvider := locationprovider.NewSimulated(time.Now().UnixNano(), simulatedProviderLatency, time.Now)

	oracle := rewardoracle.NewSimulated(time.Now().UnixNano(), simulatedOracleMaxLatency)
	oracle = rewardoracle.NewRateLimited(
		oracle,
		rewardoracle.RefillPerSecond(conf.OracleRefillPerSecond()),
		rewardoracle.BurstSize(conf.OracleBurstSize()),
	)
	cachedOracle, stopOracleCache := rewardoracle.NewCached(oracle, conf.OracleCacheTTL())
	defer stopOracleCache()

	registry := userregistry.New()
	userregistry.SeedInternalUsers(registry, conf.UserCount(), time.Now().UnixNano(), time.Now)
	logger.Info("Seeded internal users", "users", registry.Count())

	calculateRewards := app.BuildCalculateRewards(attractions, cachedOracle)
	trackUserLocation := app.BuildTrackUserLocation(locationProvider, calculateRewards)
	getNearbyAttractions := app.BuildGetNearbyAttractions(attractions, cachedOracle, conf.NearbyAttractionCount())

	users := registry.AllUsers()

	// Tracking and rewarding get separate pools: reward sweeps sit on slow
	// oracle lookups and would starve location fetches in a shared pool.
	trackConfig := scheduler.Config{BatchSize: conf.BatchSize(), PoolSize: conf.PoolSize()}
	rewardConfig := scheduler.Config{BatchSize: conf.BatchSize(), PoolSize: conf.PoolSize()}

	trackStart := time.Now()
	trackResult, err := scheduler.Run(ctx, trackConfig, "track-location", users, func(ctx context.Context, user *domain.User) error {
		_, err := trackUserLocation(ctx, user)
		return err
	})
	if err != nil {
		fail("Tracking pass failed", "error", err.Error())
	}
	logger.Info("Tracking pass finished",
		"processed", trackResult.Processed(),
		"failures", len(trackResult.Failures()),
		"duration", time.Since(trackStart).String(),
	)

	rewardStart := time.Now()
	rewardResult, err := scheduler.Run(ctx, rewardConfig, "calculate-rewards", users, scheduler.Operation(calculateRewards))
	if err != nil {
		fail("Reward pass failed", "error", err.Error())
	}
	logger.Info("Reward pass finished",
		"processed", rewardResult.Processed(),
		"failures", len(rewardResult.Failures()),
		"duration", time.Since(rewardStart).String(),
	)

	if len(users) > 0 {
		lastVisited, err := users[0].LastVisitedLocation()
		if err != nil {
			fail("Failed to get last visited location", "error", err.Error())
		}
		nearby, err := getNearbyAttractions(ctx, lastVisited)
		if err != nil {
			fail("Failed to get nearby attractions", "error", err.Error())
		}
		for _, attraction := range nearby {
			logger.Info("Nearby attraction",
				"name", attraction.AttractionName,
				"distanceMiles", attraction.DistanceMiles,
				"rewardPoints", attraction.RewardPoints,
			)
		}
	}

	backgroundTracker := tracker.New(registry, trackUserLocation, conf.TrackingInterval())
	if err := backgroundTracker.Start(ctx); err != nil {
		fail("Failed to start tracker", "error", err.Error())
	}
	logger.Info("Continuous tracking started", "interval", conf.TrackingInterval().String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down")
	if err := backgroundTracker.Stop(); err != nil {
		fail("Failed to stop tracker", "error", err.Error())
	}
	logger.Info("Tracker stopped")
}
