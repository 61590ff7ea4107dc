// Package parallel fans contiguous ranges of work out to goroutines.
// Callers hand it disjoint ranges only, so workers never share writable
// memory and no locking is needed.
package parallel

import (
	"runtime"
	"sync"
)

// Workers returns how many goroutines to start for items units of work.
// A requested count <= 0 means one per CPU. The result never exceeds items.
func Workers(requested, items int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > items {
		n = items
	}
	return n
}

// chunks splits [0, items) into at most workers contiguous ranges of
// ceiling(items/workers) elements.
func chunks(workers, items int) [][2]int {
	if items == 0 || workers == 0 {
		return nil
	}
	chunkSize := (items + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// ParallelizeN divides [0, items) into at most workers contiguous ranges
// and runs fn(start, end) for each range concurrently. workers <= 0 means
// one per CPU.
func ParallelizeN(workers, items int, fn func(start, end int)) {
	ranges := chunks(Workers(workers, items), items)
	var wg sync.WaitGroup
	for _, r := range ranges {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(r[0], r[1])
	}
	wg.Wait()
}

// MapN runs fn over the ranges ParallelizeN would use and returns the
// results in range order, so a reduction over them is deterministic for a
// given worker count.
func MapN[T any](workers, items int, fn func(start, end int) T) []T {
	ranges := chunks(Workers(workers, items), items)
	out := make([]T, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i, s, e int) {
			defer wg.Done()
			out[i] = fn(s, e)
		}(i, r[0], r[1])
	}
	wg.Wait()
	return out
}
