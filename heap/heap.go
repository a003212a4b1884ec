// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "modernc.org/mathutil"

// Heap Lifecycle & Public API (spec.md §4.6). Grounded on
// lldb/falloc.go's NewAllocator/Alloc/Free/Realloc orchestration: fit,
// unlink/remove, rewrite header, split, coalesce, in that order.

// Heap is one independent, single-mutator dynamic memory allocator over a
// Provider-backed region. The zero value is not usable; construct one with
// NewHeap. Not safe for concurrent use - spec.md §5 assumes a single
// mutator, by design.
type Heap struct {
	provider Provider
	mem      []byte // the full provisioned region, offset 0 == heap start

	buckets  [numBuckets]Ptr // segregated free list heads, 0 == empty
	miniHead Ptr             // mini free list head, 0 == empty

	initialized bool
}

// NewHeap returns a Heap backed by provider. The heap is not provisioned
// until the first call that needs it (Allocate, Calloc or an explicit
// Init) - matching spec.md §9's "Initialisation must be idempotent-safe"
// note.
func NewHeap(provider Provider) *Heap {
	return &Heap{provider: provider}
}

// Init provisions the heap: writes the prologue and epilogue sentinels and
// performs the initial chunkSize-byte extension. Calling Init on an
// already-initialized Heap is a no-op returning true, matching the public
// API's idempotent-init contract.
func (h *Heap) Init() bool {
	if h.initialized {
		return true
	}

	grant, err := h.provider.Sbrk(prologueSize + epilogueSize)
	if err != nil {
		return false
	}
	h.mem = grant

	// Prologue: size 0, allocated, prev_alloc/prev_mini unused (there is
	// nothing before the heap).
	h.setHeaderAt(0, pack(0, true, false, false))
	// Epilogue: size 0, allocated; its prev_* bits are rewritten by every
	// extend() to track the true tail block. They start as if the
	// prologue were the tail, i.e. allocated and not mini.
	h.setHeaderAt(prologueSize, pack(0, true, true, false))

	h.initialized = true

	if _, err := h.extend(chunkSize); err != nil {
		return false
	}
	return true
}

// ensureInit lazily initializes the heap, matching the teacher's "Alloc
// checks and re-initialises if heap_start is null" pattern (spec.md §9).
func (h *Heap) ensureInit() bool {
	if h.initialized {
		return true
	}
	return h.Init()
}

// Low returns the inclusive low boundary of the provisioned region.
func (h *Heap) Low() Ptr { return 0 }

// High returns the inclusive high boundary of the provisioned region, or 0
// if the heap has not been provisioned yet.
func (h *Heap) High() Ptr {
	if len(h.mem) == 0 {
		return 0
	}
	return Ptr(len(h.mem) - 1)
}

// epilogueOff returns the offset of the epilogue header, i.e. the position
// one past the last real block.
func (h *Heap) epilogueOff() Ptr { return Ptr(len(h.mem)) - epilogueSize }

// extend grows the heap by at least size bytes (rounded up to a multiple
// of 16), forms the grant into one new free block, rewrites the epilogue,
// and coalesces the new block with whatever used to precede the old
// epilogue. Returns the coalesced block's final offset, matching
// original_source/mm.c's extend_heap, which hands coalesce_block's result
// straight back to its own caller instead of re-searching the free lists.
func (h *Heap) extend(size uint64) (Ptr, error) {
	size = roundUp16(size)

	oldEpilogue := h.epilogueOff()
	oldEpilogueHd := h.headerAt(oldEpilogue)

	grant, err := h.provider.Sbrk(int(size))
	if err != nil {
		return 0, &ErrIlseq{Type: ErrProviderExhausted, Off: oldEpilogue, Arg: int64(size), More: err}
	}
	h.mem = append(h.mem, grant...)

	newBlock := oldEpilogue
	h.writeBlockHeader(newBlock, size, false, oldEpilogueHd.prevAllocated(), oldEpilogueHd.prevIsMini())

	newEpilogue := h.next(newBlock, size)
	h.setHeaderAt(newEpilogue, pack(0, true, false, false))

	return h.coalesce(newBlock), nil
}

// Allocate reserves an n-byte payload and returns its address, or 0 if the
// request cannot be satisfied (n == 0, or the provider is exhausted).
func (h *Heap) Allocate(n uint64) Ptr {
	if !h.ensureInit() {
		return 0
	}
	if n == 0 {
		return 0
	}

	asize := blockSizeFor(n)

	off := h.findFit(asize)
	if off == 0 {
		grown, err := h.extend(uint64(mathutil.MaxInt64(int64(asize), int64(chunkSize))))
		if err != nil {
			return 0
		}
		off = grown
	}

	hd := h.headerAt(off)
	size := hd.size()
	h.removeFree(off, size)

	h.writeBlockHeader(off, size, true, hd.prevAllocated(), hd.prevIsMini())
	next := h.next(off, size)
	h.setPrevAllocated(next, true)

	if rem := h.split(off, size, asize); rem != 0 {
		h.coalesce(rem)
	}

	return off + wordSize
}

// Release frees the allocation at payload address p. A null p is a no-op.
// Releasing anything not currently returned by Allocate/Reallocate/Calloc
// is undefined behaviour, per spec.md §6.
func (h *Heap) Release(p Ptr) {
	if p == 0 {
		return
	}

	off := p - wordSize
	hd := h.headerAt(off)
	h.writeBlockHeader(off, hd.size(), false, hd.prevAllocated(), hd.prevIsMini())

	next := h.next(off, hd.size())
	h.setPrevAllocated(next, false)

	h.coalesce(off)
}

// Reallocate resizes the allocation at p to n bytes, preserving its
// content up to min(old size, n) bytes, and returns the (possibly new)
// payload address. A null p behaves like Allocate(n); n == 0 behaves like
// Release(p) and returns 0. No in-place optimisation is attempted, per
// spec.md §4.6.
func (h *Heap) Reallocate(p Ptr, n uint64) Ptr {
	if p == 0 {
		return h.Allocate(n)
	}
	if n == 0 {
		h.Release(p)
		return 0
	}

	q := h.Allocate(n)
	if q == 0 {
		return 0
	}

	oldOff := p - wordSize
	oldPayload := h.headerAt(oldOff).size() - wordSize
	copy(h.At(q, n), h.At(p, uint64(mathutil.MinInt64(int64(oldPayload), int64(n)))))

	h.Release(p)
	return q
}

// Calloc allocates a zero-filled array of k elements of n bytes each,
// returning 0 on a k*n multiplication overflow or allocator failure.
func (h *Heap) Calloc(k, n uint64) Ptr {
	if k == 0 {
		return 0
	}

	total, overflow := mulUint64(k, n)
	if overflow {
		return 0
	}

	q := h.Allocate(total)
	if q == 0 {
		return 0
	}

	payload := h.At(q, total)
	for i := range payload {
		payload[i] = 0
	}
	return q
}

// At returns a slice view of n bytes of the payload at address p, freshly
// derived from the heap's current backing store. Never cache the result
// across a call that may grow the heap (Allocate, Calloc, Reallocate):
// growth can reallocate the backing array.
func (h *Heap) At(p Ptr, n uint64) []byte {
	return h.mem[p : p+Ptr(n)]
}

// mulUint64 returns a*b and whether that product overflows uint64.
func mulUint64(a, b uint64) (product uint64, overflow bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	product = a * b
	return product, product/a != b
}
