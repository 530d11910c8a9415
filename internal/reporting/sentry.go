package reporting

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/roampoint/tourguide/internal/logging"
)

var uuidRx = regexp.MustCompile(`[0-9a-f]{8}-?([0-9a-f]{4}-?){3}[0-9a-f]{12}`)

// Errors carry user and attraction IDs; strip them so Sentry groups by cause
// instead of by user.
func sanitizeError(err string) string {
	return uuidRx.ReplaceAllString(err, "<uuid>")
}

func Report(ctx context.Context, err error, extras ...map[string]string) {
	hub := sentry.CurrentHub()
	logger := logging.FromContext(ctx)
	if hub.Client() == nil {
		logger.Warn("Sentry not initialized, dropping report", "error", err, "extras", extras)
		return
	}

	logger.Error(
		"Reporting error to Sentry",
		slog.String("error", err.Error()),
		slog.Any("extras", extras),
	)

	hub.WithScope(func(scope *sentry.Scope) {
		meta := MetaFromContext(ctx)
		scope.SetTags(meta.tags)
		for key, value := range meta.extras {
			scope.SetExtra(key, value)
		}
		if meta.userID != "" {
			scope.SetUser(sentry.User{
				ID: meta.userID,
			})
		}
		if !meta.startedAt.IsZero() {
			scope.SetExtra("secondsSinceStart", time.Since(meta.startedAt).Seconds())
		}

		for _, extra := range extras {
			if extra == nil {
				continue
			}
			for key, value := range extra {
				scope.SetExtra(key, value)
			}
		}

		if err == nil {
			err = errors.New("No error provided")
		}

		scope.SetFingerprint([]string{"{{ default }}", sanitizeError(err.Error())})
		hub.CaptureException(err)
	})
}

func Init(sentryDSN string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn: sentryDSN,
	})
	if err != nil {
		return nil, err
	}

	flush := func() {
		sentry.Flush(5 * time.Second)
	}

	return flush, nil
}

// InitOrMock initializes Sentry when a DSN is configured and falls back to a
// no-op flush in development. Report degrades to log-only when not initialized.
func InitOrMock(sentryDSN string, isDevelopment bool) (func(), error) {
	if sentryDSN != "" {
		return Init(sentryDSN)
	}

	if isDevelopment {
		return func() {}, nil
	}

	return nil, errors.New("missing Sentry DSN in non-development environment")
}
