// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Provider is the raw memory source a Heap extends from - this package's
// "sbrk". It is the one external collaborator spec.md declares out of
// scope for the allocator core; Heap never assumes anything about a
// Provider beyond this contract.
//
// Modeled on lldb.Filer (filer.go), cut down to the single primitive the
// allocator core calls: growth. A Heap never reads or writes a Provider at
// an arbitrary offset - it keeps its own reference to the granted bytes and
// indexes into them directly.
type Provider interface {
	// Sbrk grows the provisioned region by n bytes of freshly zeroed
	// memory, appended immediately after whatever was previously
	// granted, and returns the newly granted slice. Growth is
	// monotonic: a Provider MUST NOT move or reclaim memory it has
	// already granted. Returns an error if the provider refuses to
	// grow further (exhaustion); the heap remains usable after such a
	// failure.
	Sbrk(n int) ([]byte, error)
}
