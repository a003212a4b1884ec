// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"bytes"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	h := newTestHeap()
	a := h.Allocate(64)
	b := h.Allocate(128)
	if a == 0 || b == 0 {
		t.Fatal("allocate failed")
	}
	copy(h.At(a, 5), []byte("hello"))
	h.Release(b)

	var buf bytes.Buffer
	if err := h.DumpSnapshot(&buf); err != nil {
		t.Fatalf("DumpSnapshot: %v", err)
	}

	h2, err := LoadSnapshot(&buf)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if !bytes.Equal(h2.mem, h.mem) {
		t.Fatal("restored heap bytes differ from the original")
	}
	if h2.buckets != h.buckets {
		t.Fatal("restored bucket heads differ from the original")
	}
	if h2.miniHead != h.miniHead {
		t.Fatal("restored mini head differs from the original")
	}
	if got := string(h2.At(a, 5)); got != "hello" {
		t.Fatalf("restored payload = %q, want %q", got, "hello")
	}
	if !h2.CheckHeap(0) {
		t.Fatal("CheckHeap failed on restored heap")
	}
}

func TestDumpSnapshotRejectsUninitialized(t *testing.T) {
	h := newTestHeap()
	var buf bytes.Buffer
	if err := h.DumpSnapshot(&buf); err == nil {
		t.Fatal("DumpSnapshot on an uninitialized heap should fail")
	}
}
