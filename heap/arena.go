// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

var _ Provider = (*Arena)(nil)

// Arena is the default, in-process Provider: a single contiguous byte
// store grown with append. It is the spiritual successor of lldb's
// MemFiler, simplified from MemFiler's paged map[int64]*[pgSize]byte
// storage (built for sparse, arbitrary-offset file emulation) down to one
// flat slice, because this allocator's next(B) = B + size(B) pointer
// arithmetic needs a genuinely contiguous address range rather than a page
// map addressed by ReadAt/WriteAt offsets.
type Arena struct {
	data []byte
}

// NewArena returns an empty Arena.
func NewArena() *Arena { return &Arena{} }

// Sbrk implements Provider.
func (a *Arena) Sbrk(n int) ([]byte, error) {
	if n < 0 {
		return nil, &ErrInval{"Arena.Sbrk: negative size", n}
	}
	grant := make([]byte, n)
	a.data = append(a.data, grant...)
	return grant, nil
}

// Size reports the number of bytes the Arena has granted so far.
func (a *Arena) Size() int { return len(a.data) }

var _ Provider = (*BoundedArena)(nil)

// BoundedArena is an Arena that refuses to grow past a fixed byte ceiling,
// for deterministically exercising the provider-exhaustion path (spec.md
// §7) in tests - the role the teacher's falloc_test.go plays with its
// -hlim flag.
type BoundedArena struct {
	Arena
	Limit int
}

// NewBoundedArena returns an Arena that fails Sbrk once its granted size
// would exceed limit bytes.
func NewBoundedArena(limit int) *BoundedArena {
	return &BoundedArena{Limit: limit}
}

// Sbrk implements Provider.
func (a *BoundedArena) Sbrk(n int) ([]byte, error) {
	if a.Arena.Size()+n > a.Limit {
		return nil, fmt.Errorf("heap: arena exhausted: requested %d bytes past limit %d (currently %d)", n, a.Limit, a.Arena.Size())
	}
	return a.Arena.Sbrk(n)
}
