//go:build unix && !linux && !darwin

package passthrough

import (
	"github.com/psarna/dirsync/pkg/vfs"

	"golang.org/x/sys/unix"
)

func syncAllowed(fd int) (vfs.SyncCheck, error) {
	return vfs.SyncAllowed, nil
}

func flush(fd int) error {
	return unix.Fsync(fd)
}
