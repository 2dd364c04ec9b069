package swarm

import (
	"runtime"
	"sync"
)

// minChunk keeps small swarms on the calling goroutine.
const minChunk = 512

// Advance runs Seek for every particle and reports in moved which ones had a
// target. Every particle sees the same r and d, so chunks run concurrently;
// the call returns once all of them are done. moved is reused when it is
// large enough.
func (s *Swarm) Advance(mode int, r Repeller, d Dynamics, moved []bool) []bool {
	n := s.Len()
	if cap(moved) < n {
		moved = make([]bool, n)
	}
	moved = moved[:n]

	parallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			moved[i] = s.Particles[i].Seek(mode, r, d)
		}
	})
	return moved
}

// parallelFor splits [0, n) into contiguous chunks of at least minChunk and
// runs fn on each.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	minChunk = max(minChunk, 1)
	workers := runtime.GOMAXPROCS(0)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
