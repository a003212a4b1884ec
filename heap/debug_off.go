// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !heapdebug

package heap

const debugBuild = false

// assert and dbgf are no-ops in release builds, matching mm.c's
// dbg_requires/dbg_ensures/dbg_printf compiling away to nothing when DEBUG
// is undefined. The compiler eliminates calls to these entirely once
// inlined, so there is no runtime cost to the call sites sprinkled through
// the package.
func assert(cond bool, format string, args ...interface{}) {}

func dbgf(format string, args ...interface{}) {}
