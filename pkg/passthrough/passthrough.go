//go:build unix

package passthrough

import (
	"path/filepath"

	"github.com/psarna/dirsync/pkg/vfs"

	"golang.org/x/sys/unix"
)

// PassthroughFS hands every operation straight to the host kernel.
type PassthroughFS struct {
	vfs.Heap
}

func New() *PassthroughFS {
	return &PassthroughFS{}
}

func (fs *PassthroughFS) OpenReadOnly(path string) (vfs.Handle, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	return vfs.Handle(fd), nil
}

func (fs *PassthroughFS) SyncAllowed(h vfs.Handle) (vfs.SyncCheck, error) {
	return syncAllowed(int(h))
}

func (fs *PassthroughFS) FlushMetadata(h vfs.Handle) error {
	return flush(int(h))
}

func (fs *PassthroughFS) Close(h vfs.Handle) error {
	return unix.Close(int(h))
}

func (fs *PassthroughFS) Lstat(path string) (*vfs.FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, err
	}
	return fileInfoFromStat(filepath.Base(path), &st), nil
}

func (fs *PassthroughFS) Readlink(path string, buf []byte) (int, error) {
	n, err := unix.Readlink(path, buf)
	if err != nil {
		return -1, err
	}
	return n, nil
}

func fileInfoFromStat(name string, st *unix.Stat_t) *vfs.FileInfo {
	return &vfs.FileInfo{
		Name: name,
		Size: st.Size,
		Mode: uint32(st.Mode),
		Ino:  uint64(st.Ino),
	}
}

var _ vfs.Platform = (*PassthroughFS)(nil)
