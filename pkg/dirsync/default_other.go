//go:build !unix

package dirsync

import (
	"errors"

	"github.com/psarna/dirsync/pkg/vfs"
)

// unsupported fails every operation on platforms without POSIX directory
// descriptors.
type unsupported struct {
	vfs.Heap
}

func defaultPlatform() vfs.Platform {
	return unsupported{}
}

func (unsupported) OpenReadOnly(string) (vfs.Handle, error) { return -1, errors.ErrUnsupported }
func (unsupported) SyncAllowed(vfs.Handle) (vfs.SyncCheck, error) {
	return vfs.SyncCheckFailed, errors.ErrUnsupported
}
func (unsupported) FlushMetadata(vfs.Handle) error { return errors.ErrUnsupported }
func (unsupported) Close(vfs.Handle) error { return nil }
func (unsupported) Lstat(string) (*vfs.FileInfo, error) { return nil, errors.ErrUnsupported }
func (unsupported) Readlink(string, []byte) (int, error) { return -1, errors.ErrUnsupported }
