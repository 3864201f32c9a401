//go:build linux

package passthrough

import (
	"github.com/psarna/dirsync/pkg/vfs"

	"golang.org/x/sys/unix"
)

// fsync on a directory of a CIFS/SMB mount fails with EINVAL, so those
// filesystems are reported as not allowed and skipped.
func syncAllowed(fd int) (vfs.SyncCheck, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(fd, &st); err != nil {
		return vfs.SyncCheckFailed, err
	}

	switch uint32(st.Type) {
	case unix.CIFS_SUPER_MAGIC, unix.SMB_SUPER_MAGIC, unix.SMB2_SUPER_MAGIC:
		return vfs.SyncNotAllowed, nil
	}
	return vfs.SyncAllowed, nil
}

func flush(fd int) error {
	return unix.Fsync(fd)
}
