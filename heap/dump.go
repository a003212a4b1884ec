// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// Heap snapshot dump (SPEC_FULL.md §3.2): a diagnostic, not a persistence,
// facility for capturing and replaying a heap's raw bytes plus its index
// state, grounded on lldb/osfiler.go and lldb/simplefilefiler.go - both of
// which exist only to mirror a byte region onto an io.Writer/io.Reader.
// Never called by Allocate/Release/Reallocate/Calloc themselves.

const snapshotMagic = "heapsnap1"

// DumpSnapshot writes a snappy-compressed capture of the heap's backing
// bytes and free-index heads to w, suitable for later replay with
// LoadSnapshot - e.g. to preserve a corrupted heap captured mid-fuzz-run
// for offline analysis.
func (h *Heap) DumpSnapshot(w io.Writer) error {
	if !h.initialized {
		return &ErrInval{Name: "DumpSnapshot", Arg: "heap not initialized"}
	}

	var header [8 + 8 + numBuckets*8 + 8]byte
	off := 0
	copy(header[off:], snapshotMagic[:8])
	off += 8
	binary.LittleEndian.PutUint64(header[off:], uint64(len(h.mem)))
	off += 8
	for _, b := range h.buckets {
		binary.LittleEndian.PutUint64(header[off:], uint64(b))
		off += 8
	}
	binary.LittleEndian.PutUint64(header[off:], uint64(h.miniHead))

	body := make([]byte, len(header)+len(h.mem))
	copy(body, header[:])
	copy(body[len(header):], h.mem)

	compressed := snappy.Encode(nil, body)
	var sizeField [8]byte
	binary.LittleEndian.PutUint64(sizeField[:], uint64(len(compressed)))
	if _, err := w.Write(sizeField[:]); err != nil {
		return err
	}
	_, err := w.Write(compressed)
	return err
}

// LoadSnapshot reconstructs a *Heap from a capture written by
// DumpSnapshot. The returned heap has no Provider attached - it is a
// frozen, read-only-in-practice view for inspection with CheckHeap and
// Dump, not a live allocator; calling Allocate/Release on it will still
// work against the in-memory mem slice but any extend() will panic on the
// nil provider, since a restored heap has nowhere further to grow.
func LoadSnapshot(r io.Reader) (*Heap, error) {
	var sizeField [8]byte
	if _, err := io.ReadFull(r, sizeField[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint64(sizeField[:])

	compressed := make([]byte, size)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	body, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, err
	}

	const headerLen = 8 + 8 + numBuckets*8 + 8
	if len(body) < headerLen {
		return nil, fmt.Errorf("heap: truncated snapshot header (%d bytes)", len(body))
	}
	if string(body[:8]) != snapshotMagic[:8] {
		return nil, fmt.Errorf("heap: bad snapshot magic")
	}

	off := 8
	memLen := binary.LittleEndian.Uint64(body[off:])
	off += 8

	h := &Heap{initialized: true}
	for i := range h.buckets {
		h.buckets[i] = Ptr(binary.LittleEndian.Uint64(body[off:]))
		off += 8
	}
	h.miniHead = Ptr(binary.LittleEndian.Uint64(body[off:]))
	off += 8

	if uint64(len(body)-off) != memLen {
		return nil, fmt.Errorf("heap: snapshot body length %d does not match recorded size %d", len(body)-off, memLen)
	}
	h.mem = body[off:]

	return h, nil
}
