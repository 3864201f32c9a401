//go:build unix

package passthrough

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/psarna/dirsync/pkg/vfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSyncClose(t *testing.T) {
	dir := t.TempDir()
	fs := New()

	h, err := fs.OpenReadOnly(dir)
	require.NoError(t, err)

	check, err := fs.SyncAllowed(h)
	require.NoError(t, err)
	if check == vfs.SyncAllowed {
		assert.NoError(t, fs.FlushMetadata(h))
	}
	assert.NoError(t, fs.Close(h))
}

func TestOpenMissing(t *testing.T) {
	_, err := New().OpenReadOnly(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, syscall.ENOENT))
}

func TestLstatDoesNotFollow(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, link))

	fs := New()

	fi, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.True(t, fi.IsSymlink())
	assert.False(t, fi.IsDir())
	assert.Equal(t, int64(len(target)), fi.Size)
	assert.Equal(t, "link", fi.Name)

	fi, err = fs.Lstat(target)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assert.False(t, fi.IsSymlink())
}

func TestReadlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, link))

	fs := New()

	buf, err := fs.Alloc(len(target) + 1)
	require.NoError(t, err)
	n, err := fs.Readlink(link, buf)
	require.NoError(t, err)
	assert.Equal(t, target, string(buf[:n]))

	_, err = fs.Readlink(target, buf)
	assert.True(t, errors.Is(err, vfs.ErrNotSymlink))

	_, err = fs.Readlink(filepath.Join(dir, "missing"), buf)
	assert.True(t, errors.Is(err, syscall.ENOENT))
}

func TestReadlinkShortBuffer(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink("/some/long/target", link))

	buf := make([]byte, 4)
	n, err := New().Readlink(link, buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, "/som", string(buf))
}
