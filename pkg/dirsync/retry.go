package dirsync

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type retryPolicy struct {
	maxTries        uint64
	initialInterval time.Duration
}

// WithExternalRetry repeats a whole SyncAll item up to maxTries times with
// exponential backoff when it fails with a transient Code. The race retries
// inside a single call are unaffected.
func WithExternalRetry(maxTries int, initialInterval time.Duration) Option {
	return func(s *Syncer) {
		if maxTries <= 1 {
			s.retry = nil
			return
		}
		s.retry = &retryPolicy{
			maxTries:        uint64(maxTries),
			initialInterval: initialInterval,
		}
	}
}

func (s *Syncer) syncWithRetry(ctx context.Context, filePath string) error {
	if s.retry == nil {
		return s.SyncDirectoryFor(filePath)
	}

	b := backoff.NewExponentialBackOff()
	if s.retry.initialInterval > 0 {
		b.InitialInterval = s.retry.initialInterval
	}
	// maxTries counts attempts, WithMaxRetries counts repeats.
	bo := backoff.WithContext(backoff.WithMaxRetries(b, s.retry.maxTries-1), ctx)

	return backoff.RetryNotify(func() error {
		err := s.SyncDirectoryFor(filePath)
		if err != nil && !CodeOf(err).Transient() {
			return backoff.Permanent(err)
		}
		return err
	}, bo, func(err error, d time.Duration) {
		s.log.Info("transient sync failure, retrying", "path", filePath, "error", err, "backoff", d)
	})
}
