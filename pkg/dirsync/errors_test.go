package dirsync

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinel(t *testing.T) {
	err := newError(OpenFailed, "open", "/var/lib/db", syscall.ENOENT)

	assert.True(t, errors.Is(err, ErrOpenFailed))
	assert.False(t, errors.Is(err, ErrFlushFailed))
	assert.True(t, errors.Is(err, syscall.ENOENT))
	assert.Equal(t, syscall.ENOENT, err.Errno)

	wrapped := fmt.Errorf("wal rotate: %w", err)
	assert.True(t, errors.Is(wrapped, ErrOpenFailed))
	assert.Equal(t, OpenFailed, CodeOf(wrapped))
	assert.Equal(t, syscall.ENOENT, ErrnoOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	err := newError(FlushFailed, "fsync", "/data", syscall.EIO)
	assert.Equal(t, "dirsync: fsync /data: flush failed: "+syscall.EIO.Error(), err.Error())

	err = newError(RaceRetriesExhausted, "readlink", "/data/link", nil)
	assert.Equal(t, "dirsync: readlink /data/link: race retries exhausted", err.Error())
	assert.Zero(t, err.Errno)

	assert.Equal(t, "dirsync: out of memory", ErrOutOfMemory.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Success, CodeOf(nil))
	assert.Equal(t, Unknown, CodeOf(errors.New("boom")))
	assert.Equal(t, StatFailed, CodeOf(ErrStatFailed))

	assert.Zero(t, ErrnoOf(nil))
	assert.Equal(t, syscall.EPERM, ErrnoOf(fmt.Errorf("x: %w", syscall.EPERM)))
}

func TestCodeString(t *testing.T) {
	codes := map[Code]string{
		Success:               "success",
		OpenFailed:            "open failed",
		SyncCheckFailed:       "sync check failed",
		FlushFailed:           "flush failed",
		StatFailed:            "stat failed",
		OutOfMemory:           "out of memory",
		RaceRetriesExhausted:  "race retries exhausted",
		PathRecursionExceeded: "path recursion exceeded",
		Unknown:               "unknown (-1)",
	}
	for c, want := range codes {
		assert.Equal(t, want, c.String())
		assert.Equal(t, c == RaceRetriesExhausted, c.Transient(), want)
	}
}
