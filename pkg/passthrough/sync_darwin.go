//go:build darwin

package passthrough

import (
	"github.com/psarna/dirsync/pkg/vfs"

	"golang.org/x/sys/unix"
)

func syncAllowed(fd int) (vfs.SyncCheck, error) {
	return vfs.SyncAllowed, nil
}

// fsync on darwin only reaches the drive cache. F_FULLFSYNC asks the drive to
// flush too; filesystems that do not implement it fall back to plain fsync.
func flush(fd int) error {
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(fd)
}
