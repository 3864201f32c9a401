//go:build unix

package dirsync

import (
	"github.com/psarna/dirsync/pkg/passthrough"
	"github.com/psarna/dirsync/pkg/vfs"
)

func defaultPlatform() vfs.Platform {
	return passthrough.New()
}
