// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "encoding/binary"

// Implicit list navigation (spec.md §4.2): forward traversal follows the
// encoded size, backward traversal reads either the mini shortcut or the
// previous block's footer. Grounded on lldb/falloc.go's nfo/leftNfo pair,
// which perform the analogous backward lookup for that package's tag-byte
// block format.

// headerAt reads the header word at off.
func (h *Heap) headerAt(off Ptr) header {
	return header(binary.LittleEndian.Uint64(h.mem[off : off+wordSize]))
}

// setHeaderAt writes the header word at off.
func (h *Heap) setHeaderAt(off Ptr, hd header) {
	binary.LittleEndian.PutUint64(h.mem[off:off+wordSize], uint64(hd))
}

// footerAt reads the footer word belonging to a free, non-mini block whose
// header starts at off and whose size is size.
func (h *Heap) footerAt(off Ptr, size uint64) header {
	foff := off + Ptr(size) - wordSize
	return header(binary.LittleEndian.Uint64(h.mem[foff : foff+wordSize]))
}

// setFooterAt writes the footer word for a free, non-mini block.
func (h *Heap) setFooterAt(off Ptr, size uint64, hd header) {
	foff := off + Ptr(size) - wordSize
	binary.LittleEndian.PutUint64(h.mem[foff:foff+wordSize], uint64(hd))
}

// writeBlockHeader writes a block's header and, iff the block is free and
// larger than a mini block, its footer too - applying doc.go's "footer
// present iff free and size > 16" rule (spec.md §4.1) whenever a whole
// block is written; setPrevAllocated and setPrevFlags apply the same rule
// when they rewrite a header in place.
func (h *Heap) writeBlockHeader(off Ptr, size uint64, alloc, prevAlloc, prevMini bool) {
	hd := pack(size, alloc, prevAlloc, prevMini)
	h.setHeaderAt(off, hd)
	if !alloc && size > miniBlock {
		h.setFooterAt(off, size, hd)
	}
}

// setPrevAllocated updates only the prev_allocated bit of the block at off,
// preserving every other field, and keeps its footer in sync if the block
// is free and non-mini.
func (h *Heap) setPrevAllocated(off Ptr, prevAlloc bool) {
	hd := h.headerAt(off).withPrevAlloc(prevAlloc)
	h.setHeaderAt(off, hd)
	if !hd.allocated() && hd.size() > miniBlock {
		h.setFooterAt(off, hd.size(), hd)
	}
}

// setPrevFlags updates both prev_allocated and prev_is_mini on the block at
// off in one read-modify-write, keeping header and footer (if applicable)
// consistent. Coalesce and split need both flags updated together;
// setPrevAllocated alone (used by Allocate/Release) only ever needs to
// touch prev_allocated, since the neighbour's size - and hence its own
// prev_is_mini bit - never changes as a result of those two calls.
func (h *Heap) setPrevFlags(off Ptr, prevAlloc, prevMini bool) {
	hd := h.headerAt(off).withPrevAlloc(prevAlloc).withPrevMini(prevMini)
	h.setHeaderAt(off, hd)
	if !hd.allocated() && hd.size() > miniBlock {
		h.setFooterAt(off, hd.size(), hd)
	}
}

// next returns the offset of the block immediately following the one at
// off, given its size.
func (h *Heap) next(off Ptr, size uint64) Ptr {
	return off + Ptr(size)
}

// prev returns the offset of the block immediately preceding the one at
// off. Only valid when hd.prevAllocated() is false: an allocated block
// carries no footer, so there would be nothing meaningful to read.
func (h *Heap) prev(off Ptr, hd header) Ptr {
	assert(!hd.prevAllocated(), "prev() called on a block whose predecessor is allocated")
	if hd.prevIsMini() {
		return off - miniBlock
	}
	footer := h.headerAt(off - wordSize)
	return off - Ptr(footer.size())
}
