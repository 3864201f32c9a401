package dirsync

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const levelOff = slog.Level(1 << 10)

// ParseLevel maps off|info|debug (and the numeric 0|1|2) to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none", "0":
		return levelOff, true
	case "info", "1":
		return slog.LevelInfo, true
	case "debug", "verbose", "2":
		return slog.LevelDebug, true
	default:
		return levelOff, false
	}
}

// LevelFromEnv reads DIRSYNC_DEBUG and DIRSYNC_LOG_LEVEL.
func LevelFromEnv() string {
	if os.Getenv("DIRSYNC_DEBUG") != "" {
		return "debug"
	}
	return os.Getenv("DIRSYNC_LOG_LEVEL")
}

// NewLogger returns a text logger writing to w at the named level. Unknown
// names turn logging off.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultLogger() *slog.Logger {
	return NewLogger(os.Stderr, LevelFromEnv())
}
