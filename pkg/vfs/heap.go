package vfs

import "syscall"

// MaxAlloc bounds a single Heap allocation. Larger requests fail with ENOMEM
// instead of panicking inside make.
const MaxAlloc = 1 << 30

// Heap implements the allocation half of Platform on the Go heap.
type Heap struct{}

func (Heap) Alloc(size int) ([]byte, error) {
	if size < 0 || size > MaxAlloc {
		return nil, syscall.ENOMEM
	}
	return make([]byte, size), nil
}

func (Heap) Free(buf []byte) {}
