package dirsync

import (
	"errors"
	"fmt"
	"syscall"
)

// Code classifies the outcome of a directory sync.
type Code int

const (
	Unknown Code = iota - 1
	Success
	OpenFailed
	SyncCheckFailed
	FlushFailed
	StatFailed
	OutOfMemory
	RaceRetriesExhausted
	PathRecursionExceeded
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case OpenFailed:
		return "open failed"
	case SyncCheckFailed:
		return "sync check failed"
	case FlushFailed:
		return "flush failed"
	case StatFailed:
		return "stat failed"
	case OutOfMemory:
		return "out of memory"
	case RaceRetriesExhausted:
		return "race retries exhausted"
	case PathRecursionExceeded:
		return "path recursion exceeded"
	default:
		return fmt.Sprintf("unknown (%d)", int(c))
	}
}

// Transient reports whether repeating the whole call may succeed without
// anything else changing first.
func (c Code) Transient() bool {
	return c == RaceRetriesExhausted
}

// Error is returned for every failed sync. Errno is the platform error number
// observed at the failing step, zero when the step had none.
type Error struct {
	Code  Code
	Op    string
	Path  string
	Errno syscall.Errno
	Err   error
}

var (
	ErrOpenFailed            = &Error{Code: OpenFailed}
	ErrSyncCheckFailed       = &Error{Code: SyncCheckFailed}
	ErrFlushFailed           = &Error{Code: FlushFailed}
	ErrStatFailed            = &Error{Code: StatFailed}
	ErrOutOfMemory           = &Error{Code: OutOfMemory}
	ErrRaceRetriesExhausted  = &Error{Code: RaceRetriesExhausted}
	ErrPathRecursionExceeded = &Error{Code: PathRecursionExceeded}
)

func newError(code Code, op, path string, err error) *Error {
	e := &Error{Code: code, Op: op, Path: path, Err: err}
	errors.As(err, &e.Errno)
	return e
}

func (e *Error) Error() string {
	msg := "dirsync: "
	if e.Op != "" {
		msg += e.Op + " " + e.Path + ": "
	}
	msg += e.Code.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same Code, so the Err* values work as
// sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf maps err to its Code. nil is Success, errors not produced by this
// package are Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// ErrnoOf returns the platform error number carried by err, or zero.
func ErrnoOf(err error) syscall.Errno {
	var e *Error
	if errors.As(err, &e) {
		return e.Errno
	}
	var errno syscall.Errno
	errors.As(err, &errno)
	return errno
}
