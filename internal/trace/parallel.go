package trace

import "sync"

// minLinesPerWorker keeps tiny inputs on the sequential path.
const minLinesPerWorker = 1024

// ClassifyParallel classifies content using up to workers goroutines. Lines
// are sharded into contiguous ranges and the per-range results are merged in
// range order, so the result is identical to Classify(content).
func ClassifyParallel(content string, workers int) *Result {
	lines := SplitLines(content)
	if workers <= 1 || len(lines) < 2*minLinesPerWorker {
		return classifyLines(lines, 1)
	}
	if limit := len(lines) / minLinesPerWorker; workers > limit {
		workers = limit
	}

	chunk := (len(lines) + workers - 1) / workers
	parts := make([]*Result, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(lines) {
			parts[w] = &Result{}
			continue
		}
		end := start + chunk
		if end > len(lines) {
			end = len(lines)
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			parts[w] = classifyLines(lines[start:end], start+1)
		}(w, start, end)
	}
	wg.Wait()

	res := &Result{}
	for _, p := range parts {
		res.merge(p)
	}
	return res
}
