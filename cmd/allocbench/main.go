// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// allocbench drives heap.Heap with a synthetic allocate/release/reallocate
// workload and reports a utilisation summary on exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/CalumZhang/dynamic-memory-allocator/heap"
)

// Adapted from lldb/lab/1/main.go: a flag+math/rand+time driven benchmark
// loop that grows and shrinks a live-handle set, polling a periodic
// maintenance hook (there: Filer.EndUpdate/BeginUpdate; here: CheckHeap) on
// a time.Tick cadence instead of every iteration.

var (
	n       = flag.Int("n", 1000, "target number of simultaneously live objects")
	minSize = flag.Int("min", 1, "minimum allocation size in bytes")
	maxSize = flag.Int("max", 1<<16, "maximum allocation size in bytes")
	iters   = flag.Int("iters", 10, "number of grow/shrink rounds")
	seed    = flag.Int64("seed", 42, "PRNG seed")
)

var secs = time.Tick(time.Second)

// poll runs CheckHeap at most once a second, mirroring lab/1's poll()
// helper that batches its own maintenance work on the same cadence.
func poll(h *heap.Heap) {
	select {
	case <-secs:
		if !h.CheckHeap(0) {
			log.Fatal("allocbench: CheckHeap failed")
		}
	default:
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	if *minSize < 1 || *maxSize < *minSize {
		fmt.Fprintln(os.Stderr, "allocbench: invalid -min/-max range")
		os.Exit(2)
	}

	h := heap.NewHeap(heap.NewArena())
	rng := rand.New(rand.NewSource(*seed))

	randSize := func() uint64 {
		return uint64(*minSize + rng.Intn(*maxSize-*minSize+1))
	}

	var live []heap.Ptr
	var requested uint64

	t0 := time.Now()
	for round := 0; round < *iters; round++ {
		for len(live) < *n {
			size := randSize()
			p := h.Allocate(size)
			if p == 0 {
				log.Fatal("allocbench: allocate failed")
			}
			requested += size
			live = append(live, p)
			poll(h)
		}

		for i := range live {
			if rng.Intn(4) != 0 {
				continue
			}
			live[i] = h.Reallocate(live[i], randSize())
			poll(h)
		}

		for ndel := len(live) / 4; ndel != 0 && len(live) > 1; ndel-- {
			i := rng.Intn(len(live))
			h.Release(live[i])
			last := len(live) - 1
			live[i] = live[last]
			live = live[:last]
			poll(h)
		}
	}

	for _, p := range live {
		h.Release(p)
	}

	if !h.CheckHeap(0) {
		log.Fatal("allocbench: final CheckHeap failed")
	}

	elapsed := time.Since(t0)
	highWater := uint64(h.High())
	var frag float64
	if highWater > 0 {
		frag = 1 - float64(requested)/float64(highWater)
	}
	fmt.Printf("n=%d iters=%d requested=%d high_water=%d external_frag=%.3f time=%s\n",
		*n, *iters, requested, highWater, frag, elapsed)
}
