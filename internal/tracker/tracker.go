package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/roampoint/tourguide/internal/adapters/userregistry"
	"github.com/roampoint/tourguide/internal/app"
	"github.com/roampoint/tourguide/internal/logging"
	"github.com/roampoint/tourguide/internal/reporting"
)

var (
	ErrNotStarted     = errors.New("tracker not started")
	ErrAlreadyStarted = errors.New("tracker already started")
)

// Tracker repeatedly tracks every registered user on a fixed interval until
// stopped. It is the low-throughput background complement to the batch
// pipeline and runs its cycles single-threaded.
type Tracker struct {
	registry *userregistry.Registry
	trackOne app.TrackUserLocation
	interval time.Duration

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(registry *userregistry.Registry, trackOne app.TrackUserLocation, interval time.Duration) *Tracker {
	return &Tracker{
		registry: registry,
		trackOne: trackOne,
		interval: interval,
	}
}

// Start begins background tracking. The first cycle runs immediately, then
// once per interval. Returns ErrAlreadyStarted while running; a stopped
// tracker can be started again.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrAlreadyStarted
	}

	t.started = true
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})

	go t.trackLoop(ctx, t.stopCh, t.doneCh)

	return nil
}

// Stop signals the loop and blocks until the in-flight cycle finishes. No
// tracking work continues after Stop returns.
func (t *Tracker) Stop() error {
	t.mu.Lock()

	if !t.started {
		t.mu.Unlock()
		return ErrNotStarted
	}

	close(t.stopCh)
	t.started = false
	doneCh := t.doneCh

	t.mu.Unlock()

	<-doneCh

	return nil
}

// IsStarted returns whether the tracker is currently running.
func (t *Tracker) IsStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.started
}

func (t *Tracker) trackLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer func() {
		// The loop also ends on its own when ctx is cancelled; clear started
		// so IsStarted stays truthful and Start works again.
		t.mu.Lock()
		t.started = false
		t.mu.Unlock()
		close(doneCh)
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.trackAllUsers(ctx, stopCh)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.trackAllUsers(ctx, stopCh)
		}
	}
}

// trackAllUsers runs one cycle. A single user's tracking failure is reported
// and the cycle moves on; only a stop signal or context cancellation ends the
// cycle early.
func (t *Tracker) trackAllUsers(ctx context.Context, stopCh <-chan struct{}) {
	logger := logging.FromContext(ctx)

	users := t.registry.AllUsers()
	logger.InfoContext(ctx, "Tracking cycle started", "users", len(users))

	cycleStart := time.Now()
	tracked := 0
	for _, user := range users {
		select {
		case <-stopCh:
			logger.InfoContext(ctx, "Tracking cycle interrupted", "tracked", tracked)
			return
		case <-ctx.Done():
			return
		default:
		}

		if _, err := t.trackOne(ctx, user); err != nil {
			reporting.Report(ctx, err, map[string]string{"user": user.ID.String()})
			continue
		}
		tracked++
	}

	logger.InfoContext(ctx, "Tracking cycle finished",
		"tracked", tracked,
		"users", len(users),
		"duration", time.Since(cycleStart).String(),
	)
}
