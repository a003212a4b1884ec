// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestPackUnpack(t *testing.T) {
	table := []struct {
		size               uint64
		alloc, prevAlloc, prevMini bool
	}{
		{16, true, true, false},
		{16, false, false, true},
		{32, true, false, false},
		{65520, false, true, false},
	}

	for _, tc := range table {
		hd := pack(tc.size, tc.alloc, tc.prevAlloc, tc.prevMini)
		if got := hd.size(); got != tc.size {
			t.Errorf("pack(%v): size() = %d, want %d", tc, got, tc.size)
		}
		if got := hd.allocated(); got != tc.alloc {
			t.Errorf("pack(%v): allocated() = %v, want %v", tc, got, tc.alloc)
		}
		if got := hd.prevAllocated(); got != tc.prevAlloc {
			t.Errorf("pack(%v): prevAllocated() = %v, want %v", tc, got, tc.prevAlloc)
		}
		if got := hd.prevIsMini(); got != tc.prevMini {
			t.Errorf("pack(%v): prevIsMini() = %v, want %v", tc, got, tc.prevMini)
		}
	}
}

func TestWithPrevAlloc(t *testing.T) {
	hd := pack(48, true, false, false)
	hd2 := hd.withPrevAlloc(true)
	if !hd2.prevAllocated() {
		t.Fatal("withPrevAlloc(true) did not set the flag")
	}
	if hd2.size() != 48 || hd2.allocated() != true {
		t.Fatal("withPrevAlloc mutated unrelated fields")
	}
	if hd2.withPrevAlloc(false).prevAllocated() {
		t.Fatal("withPrevAlloc(false) did not clear the flag")
	}
}

func TestRoundUp16(t *testing.T) {
	table := map[uint64]uint64{
		0:  16,
		1:  16,
		15: 16,
		16: 16,
		17: 32,
		32: 32,
		33: 48,
	}
	for in, want := range table {
		if got := roundUp16(in); got != want {
			t.Errorf("roundUp16(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestBlockSizeFor(t *testing.T) {
	// blockSizeFor(n) must always be a >=16, 16-aligned size able to hold
	// an 8-byte header plus n payload bytes.
	for n := uint64(0); n < 200; n++ {
		size := blockSizeFor(n)
		if size%alignment != 0 {
			t.Fatalf("blockSizeFor(%d) = %d, not 16-aligned", n, size)
		}
		if size < minBlock {
			t.Fatalf("blockSizeFor(%d) = %d, below minBlock", n, size)
		}
		if size < n+wordSize {
			t.Fatalf("blockSizeFor(%d) = %d, too small to hold header+payload", n, size)
		}
	}
}

func TestBucketMonotonic(t *testing.T) {
	// bucket() must be monotonically non-decreasing in size, and every
	// threshold boundary must land in the bucket whose lower bound it is.
	prev := -1
	for size := uint64(32); size <= 65536; size += 16 {
		b := bucket(size)
		if b < prev {
			t.Fatalf("bucket(%d) = %d, regressed from previous bucket %d", size, b, prev)
		}
		if b < 0 || b >= numBuckets {
			t.Fatalf("bucket(%d) = %d out of range [0, %d)", size, b, numBuckets)
		}
		prev = b
	}
	for i, lo := range bucketThresholds {
		if got := bucket(lo); got != i+1 {
			t.Fatalf("bucket(%d) = %d, want %d", lo, got, i+1)
		}
	}
}
