package dirsync

import (
	"log/slog"

	"github.com/psarna/dirsync/pkg/vfs"
)

const (
	// DefaultMaxDepth caps symlink hops. Far above any legitimate chain, but
	// finite so cycles terminate.
	DefaultMaxDepth = 256
	// DefaultRaceRetries is how often a link that changed between lstat and
	// readlink is probed again before giving up.
	DefaultRaceRetries = 10
)

// Syncer makes directory entries durable. It holds no mutable state, so one
// Syncer may be used from many goroutines.
type Syncer struct {
	platform    vfs.Platform
	maxDepth    int
	raceRetries int
	retry       *retryPolicy
	log         *slog.Logger
}

type Option func(*Syncer)

func WithPlatform(p vfs.Platform) Option {
	return func(s *Syncer) { s.platform = p }
}

func WithMaxDepth(depth int) Option {
	return func(s *Syncer) { s.maxDepth = depth }
}

func WithRaceRetries(n int) Option {
	return func(s *Syncer) { s.raceRetries = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) { s.log = l }
}

func New(opts ...Option) *Syncer {
	s := &Syncer{
		maxDepth:    DefaultMaxDepth,
		raceRetries: DefaultRaceRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.platform == nil {
		s.platform = defaultPlatform()
	}
	if s.log == nil {
		s.log = defaultLogger()
	}
	return s
}

// SyncDirectoryFor flushes the directory that holds filePath, following any
// symlinks the directory path resolves through. filePath itself need not
// exist. An empty filePath is a programming error and panics.
func SyncDirectoryFor(filePath string) error {
	return New().SyncDirectoryFor(filePath)
}

func (s *Syncer) SyncDirectoryFor(filePath string) error {
	if filePath == "" {
		panic("dirsync: empty file path")
	}

	// dirname works on a private copy so the caller's path is never touched.
	buf, err := s.platform.Alloc(len(filePath))
	if err != nil {
		return newError(OutOfMemory, "copy", filePath, err)
	}
	defer s.platform.Free(buf)
	copy(buf, filePath)

	return s.ResolveAndSync(string(dirname(buf)))
}

// dirname returns the parent directory component of p with POSIX dirname(3)
// semantics: trailing slashes are ignored and a path without a slash yields ".".
func dirname(p []byte) []byte {
	i := len(p) - 1
	for i > 0 && p[i] == '/' {
		i--
	}
	for i >= 0 && p[i] != '/' {
		i--
	}
	if i < 0 {
		return []byte(".")
	}
	for i > 0 && p[i] == '/' {
		i--
	}
	return p[:i+1]
}
