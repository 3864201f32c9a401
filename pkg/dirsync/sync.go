package dirsync

import "github.com/psarna/dirsync/pkg/vfs"

// SyncDirectory flushes the metadata of the directory at path without
// resolving symlinks first. Filesystems where a directory flush is not
// allowed count as success.
func (s *Syncer) SyncDirectory(path string) error {
	h, err := s.platform.OpenReadOnly(path)
	if err != nil {
		return newError(OpenFailed, "open", path, err)
	}
	defer func() {
		if err := s.platform.Close(h); err != nil {
			s.log.Debug("close failed", "path", path, "error", err)
		}
	}()

	check, err := s.platform.SyncAllowed(h)
	if err != nil || check == vfs.SyncCheckFailed {
		return newError(SyncCheckFailed, "statfs", path, err)
	}
	if check == vfs.SyncNotAllowed {
		s.log.Debug("directory sync not allowed, skipping", "path", path)
		return nil
	}

	if err := s.platform.FlushMetadata(h); err != nil {
		return newError(FlushFailed, "fsync", path, err)
	}
	s.log.Debug("directory synced", "path", path)
	return nil
}
