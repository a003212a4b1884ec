// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"fmt"
	"io"
)

// Heap Verification (spec.md §7/§8). Grounded on lldb/falloc.go's
// Allocator.Verify, which walks the whole allocator reporting violations
// through a `log func(error) bool` callback. Unlike Verify, verify here
// takes no callback and stops at the first violation, returning it as an
// *ErrIlseq, so CheckHeap can both answer a single bool and, in debug
// builds, name the invariant that broke.

// CheckHeap walks the entire block list and free indexes, verifying every
// property from spec.md §8, and reports whether the heap is internally
// consistent. line is an arbitrary caller-supplied hint (e.g. a call site
// line number) threaded into any violation found - mirroring mm.c's
// mm_checkheap(line) signature, which exists so a failing assertion can
// name where it was invoked from.
func (h *Heap) CheckHeap(line int) bool {
	err := h.verify()
	if err == nil {
		return true
	}
	assert(false, "CheckHeap(%d): %v", line, err)
	return false
}

// verify performs the actual traversal, returning the first violation
// found or nil. Kept separate from CheckHeap so Dump and tests can get at
// the underlying *ErrIlseq instead of a bare bool.
func (h *Heap) verify() error {
	if !h.initialized {
		return nil
	}

	indexed := make(map[Ptr]bool)
	if err := h.collectIndexed(indexed); err != nil {
		return err
	}

	off := Ptr(prologueSize)
	epilogue := h.epilogueOff()
	prevHd := h.headerAt(0) // prologue: allocated, size 0

	for off < epilogue {
		hd := h.headerAt(off)
		size := hd.size()

		if size%alignment != 0 || size < minBlock {
			return &ErrIlseq{Type: ErrBadSize, Off: off, Arg: int64(size)}
		}

		// Property 3: flag truth against the predecessor just visited.
		if hd.prevAllocated() != prevHd.allocated() {
			return &ErrIlseq{Type: ErrBadFlag, Off: off}
		}
		if hd.prevIsMini() != (prevHd.size() == miniBlock) {
			return &ErrIlseq{Type: ErrBadFlag, Off: off}
		}

		if !hd.allocated() {
			// Property 4: footer parity.
			if size > miniBlock {
				if ft := h.footerAt(off, size); ft != hd {
					return &ErrIlseq{Type: ErrFooterMismatch, Off: off}
				}
			}
			// Property 5: no adjacent frees.
			if !prevHd.allocated() && off > prologueSize {
				return &ErrIlseq{Type: ErrAdjacentFree, Off: off}
			}
			// Property 6: every free block reachable from an index.
			if !indexed[off] {
				return &ErrIlseq{Type: ErrNotIndexed, Off: off}
			}
			// Property 7 (bucket correctness) is checked from the index
			// side in collectIndexed, where the bucket being walked is
			// known.
		}

		// Property 1: payload alignment.
		if hd.allocated() && (off+wordSize)%alignment != 0 {
			return &ErrIlseq{Type: ErrMisaligned, Off: off}
		}

		prevHd = hd
		off = h.next(off, size)
	}

	if off != epilogue {
		return &ErrIlseq{Type: ErrBadSize, Off: off, Arg: int64(epilogue)}
	}

	return nil
}

// collectIndexed walks every segregated bucket plus the mini list, marking
// each block found as indexed and checking properties 7 and 8 (bucket
// correctness, doubly-linked consistency) along the way.
func (h *Heap) collectIndexed(indexed map[Ptr]bool) error {
	for cur := h.miniHead; cur != 0; cur = h.miniNext(cur) {
		hd := h.headerAt(cur)
		if hd.allocated() || hd.size() != miniBlock {
			return &ErrIlseq{Type: ErrWrongBucket, Off: cur}
		}
		if indexed[cur] {
			return &ErrIlseq{Type: ErrLostFreeBlock, Off: cur}
		}
		indexed[cur] = true
	}

	for b := 0; b < numBuckets; b++ {
		var prev Ptr
		for cur := h.buckets[b]; cur != 0; cur = h.freeNext(cur) {
			hd := h.headerAt(cur)
			if hd.allocated() || hd.size() == miniBlock || bucket(hd.size()) != b {
				return &ErrIlseq{Type: ErrWrongBucket, Off: cur, Arg: int64(b)}
			}
			if h.freePrev(cur) != prev {
				return &ErrIlseq{Type: ErrBadLink, Off: cur}
			}
			if indexed[cur] {
				return &ErrIlseq{Type: ErrLostFreeBlock, Off: cur}
			}
			indexed[cur] = true
			prev = cur
		}
	}
	return nil
}

// Dump writes one line per block in the implicit list, in the style of
// mm.c's dbg_printheap: offset, size, allocated/free, and the prev-flags.
// Only meaningful with the heapdebug build tag (print_heap is itself a
// debug-only facility in the C original); with the tag absent this is a
// harmless no-op so callers don't need two code paths.
func (h *Heap) Dump(w io.Writer) {
	if !debugBuild || !h.initialized {
		return
	}

	off := Ptr(prologueSize)
	epilogue := h.epilogueOff()
	for off < epilogue {
		hd := h.headerAt(off)
		fmt.Fprintf(w, "%08x size=%d alloc=%v prev_alloc=%v prev_mini=%v\n",
			uint64(off), hd.size(), hd.allocated(), hd.prevAllocated(), hd.prevIsMini())
		off = h.next(off, hd.size())
	}
}
