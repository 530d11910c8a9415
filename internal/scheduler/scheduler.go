package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/roampoint/tourguide/internal/domain"
	"github.com/roampoint/tourguide/internal/logging"
)

type Config struct {
	// Users per dispatched unit of work.
	BatchSize int
	// Maximum concurrent workers.
	PoolSize int
	// FailFast makes Run return the first operation error and stops dispatching
	// further users; in-flight batches drain at user boundaries. With FailFast
	// off (the default) failures are collected on the Result and Run succeeds.
	FailFast bool
}

// DefaultConfig derives sizes from the workload: enough batches to balance
// load across workers, few enough to keep scheduling overhead low.
func DefaultConfig(userCount int) Config {
	batchSize := userCount / 10
	if batchSize < 1 {
		batchSize = 1
	}
	return Config{
		BatchSize: batchSize,
		PoolSize:  runtime.NumCPU() * 4,
	}
}

func (c Config) withDefaults(userCount int) Config {
	defaults := DefaultConfig(userCount)
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.PoolSize <= 0 {
		c.PoolSize = defaults.PoolSize
	}
	return c
}

// Operation processes a single user. It runs inline on a pool worker.
type Operation func(ctx context.Context, user *domain.User) error

type UserFailure struct {
	UserID uuid.UUID
	Err    error
}

// Result is shared with in-flight workers; Processed and Failures may be read
// while a run is still draining.
type Result struct {
	processed atomic.Int64

	mu       sync.Mutex
	failures []UserFailure
}

// Processed returns the number of users processed so far, successes and
// failures both. Safe to poll from an external observer.
func (r *Result) Processed() int {
	return int(r.processed.Load())
}

func (r *Result) Failures() []UserFailure {
	r.mu.Lock()
	defer r.mu.Unlock()

	failures := make([]UserFailure, len(r.failures))
	copy(failures, r.failures)
	return failures
}

func (r *Result) addFailure(userID uuid.UUID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, UserFailure{UserID: userID, Err: err})
}

// Run partitions users into contiguous batches and executes op for every user
// on a pool of at most cfg.PoolSize workers, blocking until all batches finish.
//
// Static index-range partitioning puts each user in exactly one batch per run,
// so no user is processed twice or concurrently within a run.
//
// A deadline on ctx bounds the join only: when it expires Run returns the
// partial Result and the context error while dispatched batches keep draining
// in the background. Per-user state is safe to leave partially updated.
func Run(ctx context.Context, cfg Config, operation string, users []*domain.User, op Operation) (*Result, error) {
	cfg = cfg.withDefaults(len(users))
	result := &Result{}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "scheduler.Run", trace.WithAttributes(
		attribute.String("operation", operation),
		attribute.Int("users.count", len(users)),
		attribute.Int("batch.size", cfg.BatchSize),
		attribute.Int("pool.size", cfg.PoolSize),
	))
	defer span.End()

	// The join deadline must not cancel the operations themselves: in-flight
	// work is allowed to finish after the join gives up.
	g, groupCtx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.SetLimit(cfg.PoolSize)

	// Dispatch runs in the background with the join: once the pool is full,
	// Go blocks until a worker frees up, and the join deadline must stay
	// observable while dispatch is waiting.
	done := make(chan error, 1)
	go func() {
		for start := 0; start < len(users); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(users))
			batch := users[start:end]

			g.Go(func() error {
				batchStart := time.Now()
				defer func() {
					recordBatchDuration(groupCtx, operation, time.Since(batchStart))
				}()

				for _, user := range batch {
					// Only a fail-fast sibling failure cancels groupCtx; stop at
					// the next user boundary and let the group drain.
					if groupCtx.Err() != nil {
						return nil
					}

					err := op(groupCtx, user)
					result.processed.Add(1)
					recordUserProcessed(groupCtx, operation, err == nil)

					if err != nil {
						if cfg.FailFast {
							return fmt.Errorf("user %s: %w", user.ID, err)
						}
						result.addFailure(user.ID, err)
					}
				}
				return nil
			})
		}

		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return result, fmt.Errorf("batch run %q failed: %w", operation, err)
		}
		return result, nil
	case <-ctx.Done():
		logging.FromContext(ctx).WarnContext(ctx, "Batch join abandoned, work draining in background",
			"operation", operation,
			"processed", result.Processed(),
			"total", len(users),
		)
		return result, fmt.Errorf("batch run %q join: %w", operation, ctx.Err())
	}
}
