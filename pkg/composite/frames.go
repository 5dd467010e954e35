package composite

import (
	"image"
	"runtime"
	"sort"
	"sync"
)

// FrameFunc produces the output frame for one input frame.
type FrameFunc func(index int, frame *image.NRGBA) *image.NRGBA

// indexedFrame holds a frame with its original index for sorting.
type indexedFrame struct {
	index int
	frame *image.NRGBA
}

// ApplyFrames applies fn to every frame using a pool of workers and returns the
// results in input order. fn must not share mutable state between calls.
func ApplyFrames(frames []*image.NRGBA, workers int, fn FrameFunc) []*image.NRGBA {
	if len(frames) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(frames) {
		workers = len(frames)
	}

	jobs := make(chan int, len(frames))
	results := make(chan indexedFrame, len(frames))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- indexedFrame{index: idx, frame: fn(idx, frames[idx])}
			}
		}()
	}

	for i := range frames {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]indexedFrame, 0, len(frames))
	for r := range results {
		collected = append(collected, r)
	}

	// Sort by index to maintain order
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	out := make([]*image.NRGBA, len(collected))
	for i, f := range collected {
		out[i] = f.frame
	}
	return out
}
