// Package pool provides the bounded-concurrency primitive used by the
// archival pipeline: at most limit tasks are in flight, the next task is
// admitted only when a slot frees, and all stragglers are drained before
// returning. One task's failure never cancels its siblings; tasks record
// their own failures.
package pool

import "sync"

// ForEach runs task over items with at most limit tasks in flight and
// returns once every task has completed.
func ForEach[T any](items []T, limit int, task func(T)) {
	if limit < 1 {
		limit = 1
	}

	var wg sync.WaitGroup
	slots := make(chan struct{}, limit)

	for _, item := range items {
		slots <- struct{}{}
		wg.Add(1)
		go func(item T) {
			defer func() {
				<-slots
				wg.Done()
			}()
			task(item)
		}(item)
	}

	wg.Wait()
}
