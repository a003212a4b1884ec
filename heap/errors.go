// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// ErrInval reports an invalid argument passed to a public entry point.
type ErrInval struct {
	Name string // Which check failed, e.g. "Allocate: negative size".
	Arg  interface{}
}

func (e *ErrInval) Error() string {
	return fmt.Sprintf("%s (arg %v)", e.Name, e.Arg)
}

// IlseqType enumerates the kinds of internal invariant violation ErrIlseq
// can report. ("ILSEQ" - illegal sequence - names a corrupted heap, the
// same convention lldb.ErrILSEQ uses for a corrupted Filer.)
type IlseqType int

const (
	ErrOther IlseqType = iota
	ErrMisaligned
	ErrBadSize
	ErrBadFlag
	ErrFooterMismatch
	ErrAdjacentFree
	ErrNotIndexed
	ErrWrongBucket
	ErrBadLink
	ErrLostFreeBlock
	ErrProviderExhausted
)

func (t IlseqType) String() string {
	switch t {
	case ErrMisaligned:
		return "payload not 16-byte aligned"
	case ErrBadSize:
		return "block size not a positive multiple of 16"
	case ErrBadFlag:
		return "prev_allocated/prev_is_mini does not match the preceding block"
	case ErrFooterMismatch:
		return "free block header/footer mismatch"
	case ErrAdjacentFree:
		return "two adjacent free blocks"
	case ErrNotIndexed:
		return "free block missing from every index"
	case ErrWrongBucket:
		return "free block present in the wrong bucket"
	case ErrBadLink:
		return "doubly-linked free list prev/next mismatch"
	case ErrLostFreeBlock:
		return "free block reachable from more than one index entry"
	case ErrProviderExhausted:
		return "raw memory provider refused to grow"
	default:
		return "heap invariant violation"
	}
}

// ErrIlseq reports a detected heap corruption or invariant violation. Off is
// the byte offset of the offending block, when known.
type ErrIlseq struct {
	Type IlseqType
	Off  Ptr
	Arg  int64
	More error
}

func (e *ErrIlseq) Error() string {
	if e.More != nil {
		return fmt.Sprintf("heap corrupted at offset %#x: %s: %s", e.Off, e.Type, e.More)
	}
	return fmt.Sprintf("heap corrupted at offset %#x: %s (arg %d)", e.Off, e.Type, e.Arg)
}

func (e *ErrIlseq) Unwrap() error { return e.More }
