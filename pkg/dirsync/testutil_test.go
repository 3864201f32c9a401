//go:build unix

package dirsync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/psarna/dirsync/pkg/passthrough"
	"github.com/psarna/dirsync/pkg/vfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncer(t *testing.T, opts ...Option) (*Syncer, *vfs.FaultyPlatform) {
	t.Helper()
	fp := vfs.NewFaultyPlatform(passthrough.New())
	opts = append([]Option{
		WithPlatform(fp),
		WithLogger(NewLogger(io.Discard, "debug")),
	}, opts...)
	return New(opts...), fp
}

// makeChain creates n symlinks under root, the first pointing at target and
// each following one at its predecessor, and returns the last link.
func makeChain(t *testing.T, root, target string, n int) string {
	t.Helper()
	prev := target
	for i := 0; i < n; i++ {
		link := filepath.Join(root, fmt.Sprintf("link%03d", i))
		require.NoError(t, os.Symlink(prev, link))
		prev = link
	}
	return prev
}

func makeDir(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0o755))
	return dir
}

func syncAllowedHere(t *testing.T, dir string) bool {
	t.Helper()
	fs := passthrough.New()
	h, err := fs.OpenReadOnly(dir)
	require.NoError(t, err)
	defer fs.Close(h)
	check, err := fs.SyncAllowed(h)
	require.NoError(t, err)
	return check == vfs.SyncAllowed
}

func assertNoLeaks(t *testing.T, fp *vfs.FaultyPlatform) {
	t.Helper()
	assert.Equal(t, 0, fp.OpenHandles(), "open handles")
	assert.Equal(t, 0, fp.LiveBuffers(), "live buffers")
	assert.Equal(t, 0, fp.DoubleFrees(), "double frees")
}
