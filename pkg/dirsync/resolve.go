package dirsync

import (
	"errors"
	"syscall"

	"github.com/psarna/dirsync/pkg/vfs"
)

// ResolveAndSync follows path through any chain of symlinks and flushes the
// directory it ends at.
func (s *Syncer) ResolveAndSync(path string) error {
	dir, err := s.Resolve(path)
	if err != nil {
		return err
	}
	return s.SyncDirectory(dir)
}

// Resolve follows path through any chain of symlinks and returns the first
// path that is not a link. Each link target is taken as a fresh path, so a
// relative target resolves against the working directory.
func (s *Syncer) Resolve(path string) (string, error) {
	for depth := s.maxDepth; ; depth-- {
		target, isLink, err := s.readLink(path)
		if err != nil {
			return "", err
		}
		if !isLink {
			return path, nil
		}
		if depth <= 0 {
			return "", newError(PathRecursionExceeded, "readlink", path, syscall.ELOOP)
		}
		s.log.Debug("following symlink", "path", path, "target", target, "depth", depth)
		path = target
	}
}

// readLink reads the target of path into a buffer sized from a preceding
// lstat. When the link grows between the two calls the read fills the whole
// buffer, and the pair is repeated up to raceRetries times.
func (s *Syncer) readLink(path string) (string, bool, error) {
	retries := s.raceRetries
	for {
		fi, err := s.platform.Lstat(path)
		if err != nil {
			return "", false, newError(StatFailed, "lstat", path, err)
		}
		if fi.Size < 0 || fi.Size >= vfs.MaxAlloc {
			return "", false, newError(OutOfMemory, "alloc", path, syscall.ENOMEM)
		}

		buf, err := s.platform.Alloc(int(fi.Size) + 1)
		if err != nil {
			return "", false, newError(OutOfMemory, "alloc", path, err)
		}

		n, err := s.platform.Readlink(path, buf)
		switch {
		case errors.Is(err, vfs.ErrNotSymlink), err == nil && n == 0:
			s.platform.Free(buf)
			return "", false, nil
		case err != nil:
			s.platform.Free(buf)
			return "", false, newError(StatFailed, "readlink", path, err)
		case int64(n) > fi.Size:
			s.platform.Free(buf)
			if retries <= 0 {
				return "", false, newError(RaceRetriesExhausted, "readlink", path, nil)
			}
			retries--
			s.log.Debug("symlink changed while reading, retrying", "path", path, "retries_left", retries)
			continue
		}

		target := string(buf[:n])
		s.platform.Free(buf)
		return target, true, nil
	}
}
