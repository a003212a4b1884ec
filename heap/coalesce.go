// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Coalesce/Split Engine (spec.md §4.4). The four-case coalesce dispatch
// mirrors lldb/falloc.go's free2, which performs the identical
// (leftFree?, rightFree?) merge decision for that package's own block
// format.

// coalesce merges the free, unindexed block at off with any free
// neighbours, inserts the result into the appropriate index, and returns
// its final offset - which may be off itself or a preceding block's offset
// if a left merge happened. Mirrors original_source/mm.c's coalesce_block,
// which callers like extend_heap use directly instead of re-searching the
// free lists for the block they just created. off must not appear in any
// index when this is called.
func (h *Heap) coalesce(off Ptr) Ptr {
	hd := h.headerAt(off)
	size := hd.size()

	var prevOff Ptr
	prevFree := false
	if !hd.prevAllocated() {
		prevOff = h.prev(off, hd)
		prevFree = true
	}

	nextOff := h.next(off, size)
	nextHd := h.headerAt(nextOff)
	nextFree := !nextHd.allocated()

	switch {
	case !prevFree && !nextFree:
		// (T, T): nothing to merge. off stays an isolated free block, so
		// next(off).prev_allocated must become false to track that -
		// see Open Question resolution 3 in DESIGN.md.
		h.insertFree(off, size)
		h.setPrevFlags(nextOff, false, size == miniBlock)
		return off

	case prevFree && !nextFree:
		// (F, T): merge into prev. The merged block is prev's (>= 16
		// bytes) plus off's (>= 16 bytes), so it is always > 16 bytes -
		// prev_is_mini on the successor is unconditionally false (Open
		// Question #1 in SPEC_FULL.md). The merged block is free, so
		// next's prev_allocated must become false too.
		prevHd := h.headerAt(prevOff)
		h.removeFree(prevOff, prevHd.size())
		merged := prevHd.size() + size
		assert(merged > miniBlock, "(F,T) coalesce produced a mini-sized merge")
		h.writeBlockHeader(prevOff, merged, false, prevHd.prevAllocated(), prevHd.prevIsMini())
		h.setPrevFlags(nextOff, false, false)
		h.insertFree(prevOff, merged)
		return prevOff

	case !prevFree && nextFree:
		// (T, F): merge the next block into off.
		h.removeFree(nextOff, nextHd.size())
		merged := size + nextHd.size()
		h.writeBlockHeader(off, merged, false, true, hd.prevIsMini())
		afterNext := h.next(nextOff, nextHd.size())
		h.setPrevFlags(afterNext, false, false)
		h.insertFree(off, merged)
		return off

	default:
		// (F, F): merge prev, off and next into one block rooted at prev.
		prevHd := h.headerAt(prevOff)
		h.removeFree(prevOff, prevHd.size())
		h.removeFree(nextOff, nextHd.size())
		merged := prevHd.size() + size + nextHd.size()
		h.writeBlockHeader(prevOff, merged, false, prevHd.prevAllocated(), prevHd.prevIsMini())
		afterNext := h.next(nextOff, nextHd.size())
		h.setPrevFlags(afterNext, false, false)
		h.insertFree(prevOff, merged)
		return prevOff
	}
}

// withPrevMini returns h with only its prev_is_mini bit replaced.
func (h header) withPrevMini(prevMini bool) header {
	if prevMini {
		return h | flagPrevMini
	}
	return h &^ flagPrevMini
}

// split divides the allocated, unindexed block at off (size size) into an
// asize-byte allocated prefix and, if at least 16 bytes remain, a free
// remainder. It returns the remainder's offset, or 0 if the block was not
// big enough to split (spec.md §4.4: "Otherwise return null and leave B as
// a whole allocation"). The caller is responsible for coalescing (and thus
// indexing) the returned remainder - split itself never touches any index.
func (h *Heap) split(off Ptr, size, asize uint64) Ptr {
	assert(asize <= size, "split: asize %d exceeds block size %d", asize, size)
	if size-asize < minBlock {
		return 0
	}

	hd := h.headerAt(off)
	h.writeBlockHeader(off, asize, true, hd.prevAllocated(), hd.prevIsMini())

	remOff := h.next(off, asize)
	remSize := size - asize
	h.writeBlockHeader(remOff, remSize, false, true, asize == miniBlock)

	after := h.next(remOff, remSize)
	h.setPrevFlags(after, false, remSize == miniBlock)

	return remOff
}
