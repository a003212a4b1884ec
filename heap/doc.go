// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package heap implements a segregated free-list dynamic memory allocator
over a single, contiguous, monotonically growable region obtained from a
Provider (the package's "sbrk").

Block layout

Every block is a multiple of 16 bytes, at least 16 bytes long:

	offset 0        : 8 byte header
	offset 8        : payload (allocated) or free-link area (free, size >= 32)
	offset size - 8 : 8 byte footer, present iff the block is free and size > 16

The header packs the block size into bits [63:4] (the low 4 bits are always
zero, alignment forces it) and three flags into the low bits:

	bit 0: allocated
	bit 1: prev_allocated - allocation state of the immediately preceding block
	bit 2: prev_is_mini   - whether the immediately preceding block has size 16

A free block of size >= 32 replicates its header into a footer and uses its
first 16 payload bytes as a doubly-linked free-list node (prev, next, each an
8 byte Ptr). A free block of exactly 16 bytes (a "mini" block) carries no
footer - there is no room for one alongside a link field - and instead forms
a singly-linked LIFO stack via its one link field; prev_is_mini on the
following block is how backward traversal locates it without a footer.

The heap is bounded by two sentinels: a prologue word at offset 0 (size 0,
allocated, so nothing ever coalesces past the start of the heap) and an
epilogue header at the very end (size 0, allocated, prev_* tracking the true
tail block) which is rewritten every time the heap grows.

Free blocks are indexed in 14 size-class buckets (a plain array of head
Ptrs) plus one mini-block list; see block.go for bucket boundaries.
*/
package heap
