package vfs

// Platform is the set of operating system primitives directory sync is built
// on. Implementations return raw errno values where the OS reports one.
type Platform interface {
	OpenReadOnly(path string) (Handle, error)
	SyncAllowed(h Handle) (SyncCheck, error)
	FlushMetadata(h Handle) error
	Close(h Handle) error

	// Lstat does not follow a final symlink.
	Lstat(path string) (*FileInfo, error)
	// Readlink fills buf with the link target and returns the byte count.
	// A path that is not a symlink yields ErrNotSymlink.
	Readlink(path string, buf []byte) (int, error)

	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}
