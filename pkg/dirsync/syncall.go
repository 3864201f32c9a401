package dirsync

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SyncAll runs SyncDirectoryFor for every path with at most jobs calls in
// flight. The first failure stops paths that have not started yet and is
// returned.
func (s *Syncer) SyncAll(ctx context.Context, filePaths []string, jobs int) error {
	if jobs < 1 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, p := range filePaths {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.syncWithRetry(ctx, p); err != nil {
				s.log.Error("directory sync failed", "path", p, "code", CodeOf(err).String(), "errno", int(ErrnoOf(err)), "error", err)
				return err
			}
			s.log.Info("synced", "path", p)
			return nil
		})
	}
	return g.Wait()
}
