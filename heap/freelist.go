// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "encoding/binary"

// Free Index (spec.md §4.3): 14 size-bucketed doubly-linked lists for
// blocks of size >= 32, plus one singly-linked LIFO stack for 16-byte mini
// blocks. Grounded on lldb/flt.go's fixed-table-of-list-heads shape
// (without its pluggable/persistent FLT strategy layer, which this domain
// has no use for) and on lldb/falloc.go's link/unlink splice logic.
//
// Link field layout, inside a free block's payload area:
//
//	non-mini (size >= 32): offset+8  = prev link, offset+16 = next link
//	mini     (size == 16): offset+8  = next link (no prev; singly linked)

func (h *Heap) linkFieldAt(off Ptr, fieldOff Ptr) Ptr {
	return Ptr(binary.LittleEndian.Uint64(h.mem[off+fieldOff : off+fieldOff+wordSize]))
}

func (h *Heap) setLinkFieldAt(off Ptr, fieldOff Ptr, v Ptr) {
	binary.LittleEndian.PutUint64(h.mem[off+fieldOff:off+fieldOff+wordSize], uint64(v))
}

func (h *Heap) freePrev(off Ptr) Ptr   { return h.linkFieldAt(off, wordSize) }
func (h *Heap) setFreePrev(off, v Ptr) { h.setLinkFieldAt(off, wordSize, v) }
func (h *Heap) freeNext(off Ptr) Ptr   { return h.linkFieldAt(off, 2*wordSize) }
func (h *Heap) setFreeNext(off, v Ptr) { h.setLinkFieldAt(off, 2*wordSize, v) }
func (h *Heap) miniNext(off Ptr) Ptr   { return h.linkFieldAt(off, wordSize) }
func (h *Heap) setMiniNext(off, v Ptr) { h.setLinkFieldAt(off, wordSize, v) }

// insertFree adds a free block to the appropriate index: the mini list if
// it is exactly 16 bytes, otherwise the head of its size bucket.
func (h *Heap) insertFree(off Ptr, size uint64) {
	if size == miniBlock {
		h.setMiniNext(off, h.miniHead)
		h.miniHead = off
		return
	}

	b := bucket(size)
	oldHead := h.buckets[b]
	h.setFreePrev(off, 0)
	h.setFreeNext(off, oldHead)
	if oldHead != 0 {
		h.setFreePrev(oldHead, off)
	}
	h.buckets[b] = off
}

// removeFree splices a known-free block of the given size out of its
// index. For mini blocks this is a linear walk from the list head (the
// list is singly linked, so there is no O(1) predecessor lookup); for
// general blocks it is an O(1) splice using the block's own prev/next
// fields.
func (h *Heap) removeFree(off Ptr, size uint64) {
	if size == miniBlock {
		h.removeMini(off)
		return
	}

	b := bucket(size)
	p, n := h.freePrev(off), h.freeNext(off)
	switch {
	case p == 0:
		h.buckets[b] = n
	default:
		h.setFreeNext(p, n)
	}
	if n != 0 {
		h.setFreePrev(n, p)
	}
	// Defensive clarity (SPEC_FULL.md Open Question #2): a stale link
	// read after this point is a bug, not a valid free-list traversal,
	// so make it impossible to read a useful value back out.
	h.setFreePrev(off, 0)
	h.setFreeNext(off, 0)
}

func (h *Heap) removeMini(off Ptr) {
	if h.miniHead == off {
		h.miniHead = h.miniNext(off)
		h.setMiniNext(off, 0)
		return
	}

	for cur := h.miniHead; cur != 0; cur = h.miniNext(cur) {
		if next := h.miniNext(cur); next == off {
			h.setMiniNext(cur, h.miniNext(off))
			h.setMiniNext(off, 0)
			return
		}
	}
	assert(false, "removeMini: block at %#x is not on the mini list", off)
}
