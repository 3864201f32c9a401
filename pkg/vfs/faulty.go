package vfs

import (
	"strings"
	"sync"
	"syscall"
)

// Fault describes the failures injected for paths matching a rule.
type Fault struct {
	FailOpen      bool
	FailSyncCheck bool
	NotAllowed    bool
	FailFlush     bool
	FailClose     bool
	FailLstat     bool
	FailReadlink  bool

	// StaleProbes makes the first N lstat calls on a matching symlink report
	// a size of zero, as if the target grew between lstat and readlink.
	StaleProbes int

	Err syscall.Errno // EIO when unset
}

// FaultyPlatform wraps a Platform, injects faults and keeps count of the
// descriptors and buffers it hands out.
type FaultyPlatform struct {
	Platform Platform

	// BeforeOpen runs ahead of every OpenReadOnly.
	BeforeOpen func(path string)

	// FailAllocAfter lets that many allocations succeed and fails the rest
	// with ENOMEM. -1 disables.
	FailAllocAfter int

	mu      sync.Mutex
	rules   map[string]Fault
	stale   map[string]int
	handles map[Handle]string
	buffers map[*byte]struct{}

	allocs      int
	flushes     int
	doubleFrees int
}

func NewFaultyPlatform(p Platform) *FaultyPlatform {
	return &FaultyPlatform{
		Platform:       p,
		FailAllocAfter: -1,
		rules:          make(map[string]Fault),
		stale:          make(map[string]int),
		handles:        make(map[Handle]string),
		buffers:        make(map[*byte]struct{}),
	}
}

// AddRule injects fault for every path containing pattern. The longest
// matching pattern wins.
func (f *FaultyPlatform) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
	f.stale[pattern] = fault.StaleProbes
}

func (f *FaultyPlatform) match(path string) (string, Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var (
		pattern string
		fault   Fault
	)
	for p, rule := range f.rules {
		if strings.Contains(path, p) && len(p) >= len(pattern) {
			pattern, fault = p, rule
		}
	}
	if fault.Err == 0 {
		fault.Err = syscall.EIO
	}
	return pattern, fault
}

func (f *FaultyPlatform) handlePath(h Handle) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handles[h]
}

func (f *FaultyPlatform) OpenReadOnly(path string) (Handle, error) {
	if f.BeforeOpen != nil {
		f.BeforeOpen(path)
	}
	if _, fault := f.match(path); fault.FailOpen {
		return -1, fault.Err
	}
	h, err := f.Platform.OpenReadOnly(path)
	if err != nil {
		return h, err
	}
	f.mu.Lock()
	f.handles[h] = path
	f.mu.Unlock()
	return h, nil
}

func (f *FaultyPlatform) SyncAllowed(h Handle) (SyncCheck, error) {
	_, fault := f.match(f.handlePath(h))
	switch {
	case fault.FailSyncCheck:
		return SyncCheckFailed, fault.Err
	case fault.NotAllowed:
		return SyncNotAllowed, nil
	}
	return f.Platform.SyncAllowed(h)
}

func (f *FaultyPlatform) FlushMetadata(h Handle) error {
	if _, fault := f.match(f.handlePath(h)); fault.FailFlush {
		return fault.Err
	}
	if err := f.Platform.FlushMetadata(h); err != nil {
		return err
	}
	f.mu.Lock()
	f.flushes++
	f.mu.Unlock()
	return nil
}

func (f *FaultyPlatform) Close(h Handle) error {
	path := f.handlePath(h)
	f.mu.Lock()
	delete(f.handles, h)
	f.mu.Unlock()

	err := f.Platform.Close(h)
	if _, fault := f.match(path); fault.FailClose {
		return fault.Err
	}
	return err
}

func (f *FaultyPlatform) Lstat(path string) (*FileInfo, error) {
	pattern, fault := f.match(path)
	if fault.FailLstat {
		return nil, fault.Err
	}
	fi, err := f.Platform.Lstat(path)
	if err != nil || !fi.IsSymlink() {
		return fi, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stale[pattern] > 0 {
		f.stale[pattern]--
		stale := *fi
		stale.Size = 0
		return &stale, nil
	}
	return fi, nil
}

func (f *FaultyPlatform) Readlink(path string, buf []byte) (int, error) {
	if _, fault := f.match(path); fault.FailReadlink {
		return -1, fault.Err
	}
	return f.Platform.Readlink(path, buf)
}

func (f *FaultyPlatform) Alloc(size int) ([]byte, error) {
	f.mu.Lock()
	if f.FailAllocAfter >= 0 && f.allocs >= f.FailAllocAfter {
		f.mu.Unlock()
		return nil, syscall.ENOMEM
	}
	f.mu.Unlock()

	buf, err := f.Platform.Alloc(size)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.allocs++
	if len(buf) > 0 {
		// zero-length buffers have no address to track
		f.buffers[&buf[0]] = struct{}{}
	}
	return buf, nil
}

func (f *FaultyPlatform) Free(buf []byte) {
	if len(buf) > 0 {
		f.mu.Lock()
		if _, ok := f.buffers[&buf[0]]; ok {
			delete(f.buffers, &buf[0])
		} else {
			f.doubleFrees++
		}
		f.mu.Unlock()
	}
	f.Platform.Free(buf)
}

// Allocs returns the number of successful allocations so far.
func (f *FaultyPlatform) Allocs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocs
}

// OpenHandles returns the number of handles opened and not yet closed.
func (f *FaultyPlatform) OpenHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handles)
}

// LiveBuffers returns the number of allocated buffers not yet freed.
func (f *FaultyPlatform) LiveBuffers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.buffers)
}

// DoubleFrees counts Free calls on buffers that were not live.
func (f *FaultyPlatform) DoubleFrees() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doubleFrees
}

// Flushes returns the number of successful FlushMetadata calls.
func (f *FaultyPlatform) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}

var _ Platform = (*FaultyPlatform)(nil)
