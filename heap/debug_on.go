// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build heapdebug

package heap

import (
	"fmt"
	"os"
)

const debugBuild = true

// assert is the Go stand-in for mm.c's dbg_requires/dbg_ensures macros: it
// panics with a descriptive message when cond is false. Compiled out
// entirely in non-heapdebug builds.
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic("heap: assertion failed: " + fmt.Sprintf(format, args...))
	}
}

// dbgf is the Go stand-in for mm.c's dbg_printf.
func dbgf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "heap: "+format+"\n", args...)
}
