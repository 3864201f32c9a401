package vfs

import (
	"fmt"
	"syscall"
)

// Handle is an open descriptor owned by a Platform.
type Handle int

// SyncCheck is the outcome of asking whether a directory may be flushed.
type SyncCheck int

const (
	SyncAllowed SyncCheck = iota
	SyncNotAllowed
	SyncCheckFailed
)

func (c SyncCheck) String() string {
	switch c {
	case SyncAllowed:
		return "allowed"
	case SyncNotAllowed:
		return "not allowed"
	case SyncCheckFailed:
		return "check failed"
	default:
		return fmt.Sprintf("SyncCheck(%d)", int(c))
	}
}

// ErrNotSymlink is what readlink(2) reports for a path that is not a link.
var ErrNotSymlink error = syscall.EINVAL

const (
	modeTypeMask = 0o170000
	modeDir      = 0o040000
	modeSymlink  = 0o120000
)

type FileInfo struct {
	Name string
	Size int64
	Mode uint32
	Ino  uint64
}

func (fi *FileInfo) IsDir() bool {
	return fi.Mode&modeTypeMask == modeDir
}

func (fi *FileInfo) IsSymlink() bool {
	return fi.Mode&modeTypeMask == modeSymlink
}
