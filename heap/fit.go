// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "modernc.org/mathutil"

// Placement Policy (spec.md §4.5). Grounded on original_source/mm.c's
// find_fit for the exact early-exit condition, and on lldb/flt.go's find
// (walk size classes from the matching one upward, return the first
// non-empty) for the outer loop shape.

// findFit returns the offset of a free block able to hold asize bytes, or 0
// if none exists in any index.
func (h *Heap) findFit(asize uint64) Ptr {
	if asize == miniBlock && h.miniHead != 0 {
		return h.miniHead
	}

	for b := bucket(asize); b < numBuckets; b++ {
		if off := h.scanBucket(b, asize); off != 0 {
			return off
		}
	}
	return 0
}

// scanBucket performs the bounded better-fit walk within one bucket: track
// the smallest block seen that is still >= asize, and stop early the first
// time a non-improving block is seen (spec.md's "Early-exit heuristic").
func (h *Heap) scanBucket(b int, asize uint64) Ptr {
	var best Ptr
	bestSize := int64(-1)

	for cur := h.buckets[b]; cur != 0; cur = h.freeNext(cur) {
		size := int64(h.headerAt(cur).size())
		if size < int64(asize) {
			continue
		}

		if best == 0 {
			best, bestSize = cur, size
			continue
		}

		improved := mathutil.MinInt64(bestSize, size)
		if improved == bestSize {
			// size >= bestSize and best already qualifies: this block
			// does not improve on best, so stop scanning and take what
			// we have.
			return best
		}
		bestSize, best = improved, cur
	}

	return best
}
