// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

// TestFreeListDoublyLinked checks property 8 (doubly-linked consistency)
// directly after a sequence of inserts and removes on a single bucket,
// independent of CheckHeap's own traversal of the same structure.
func TestFreeListDoublyLinked(t *testing.T) {
	h := newTestHeap()
	h.Init()

	// Allocate three same-size blocks with a spacer allocation after
	// each, so that releasing all three never leaves one of them
	// adjacent to another free block (including the free tail of the
	// heap) - otherwise coalesce would merge them and there would be
	// nothing left to exercise linkage on.
	a := h.Allocate(40)
	s1 := h.Allocate(40)
	b := h.Allocate(40)
	s2 := h.Allocate(40)
	c := h.Allocate(40)
	s3 := h.Allocate(40)
	if a == 0 || s1 == 0 || b == 0 || s2 == 0 || c == 0 || s3 == 0 {
		t.Fatal("allocate failed")
	}

	h.Release(a)
	h.Release(c)
	h.Release(b)

	b2 := bucket(blockSizeFor(40))
	seen := map[Ptr]bool{}
	var prev Ptr
	for cur := h.buckets[b2]; cur != 0; cur = h.freeNext(cur) {
		if h.freePrev(cur) != prev {
			t.Fatalf("node %#x: freePrev = %#x, want %#x", cur, h.freePrev(cur), prev)
		}
		seen[cur] = true
		prev = cur
	}

	for _, p := range []Ptr{a, b, c} {
		off := p - wordSize
		if !seen[off] {
			t.Fatalf("block %#x missing from bucket %d walk", off, b2)
		}
	}

	if !h.CheckHeap(0) {
		t.Fatal("CheckHeap failed after doubly-linked exercise")
	}
}

// TestMiniListLIFO checks that the mini list pops in the reverse order it
// was pushed (the singly-linked stack discipline spec.md §4.3 describes).
func TestMiniListLIFO(t *testing.T) {
	h := newTestHeap()
	h.Init()

	// Each mini block is followed by an allocated spacer so that
	// releasing it does not coalesce it with a free neighbour.
	p1 := h.Allocate(8)
	s1 := h.Allocate(8)
	p2 := h.Allocate(8)
	s2 := h.Allocate(8)
	p3 := h.Allocate(8)
	s3 := h.Allocate(8)
	if p1 == 0 || p2 == 0 || p3 == 0 || s1 == 0 || s2 == 0 || s3 == 0 {
		t.Fatal("allocate(8) failed")
	}

	h.Release(p1)
	h.Release(p2)
	h.Release(p3)

	// Pushed order: p1, p2, p3. LIFO pop order: p3, p2, p1.
	want := []Ptr{p3, p2, p1}
	for _, wantP := range want {
		got := h.Allocate(8)
		if got != wantP {
			t.Fatalf("mini list popped %#x, want %#x", got, wantP)
		}
	}
}

func TestRemoveFreeNilsStaleLinks(t *testing.T) {
	h := newTestHeap()
	h.Init()

	a := h.Allocate(40)
	b := h.Allocate(40)
	c := h.Allocate(40)
	d := h.Allocate(40)
	if a == 0 || b == 0 || c == 0 || d == 0 {
		t.Fatal("allocate failed")
	}
	// Release c, then a: a becomes the head of its bucket with c as its
	// next link; b and d keep both from coalescing with anything.
	h.Release(c)
	h.Release(a)
	aOff := a - wordSize

	// Re-allocate a's slot back out of the free list. writeBlockHeader's
	// allocated path only writes the header word, so the link fields
	// still hold whatever removeFree left there: both must be zero.
	got := h.Allocate(40)
	if got-wordSize != aOff {
		t.Fatalf("did not reuse freed block: got offset %#x, want %#x", got-wordSize, aOff)
	}
	if p, n := h.freePrev(aOff), h.freeNext(aOff); p != 0 || n != 0 {
		t.Fatalf("stale links after reuse: prev %#x, next %#x, want 0, 0", p, n)
	}
	if !h.CheckHeap(0) {
		t.Fatal("CheckHeap failed after reuse")
	}
	_, _ = b, d
}
