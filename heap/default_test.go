// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestDefaultHeapLazyInit(t *testing.T) {
	p := Allocate(16)
	if p == 0 {
		t.Fatal("package-level Allocate failed")
	}
	if !CheckHeap(0) {
		t.Fatal("package-level CheckHeap failed")
	}
	Release(p)
	if !CheckHeap(0) {
		t.Fatal("package-level CheckHeap failed after release")
	}
}
