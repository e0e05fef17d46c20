package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForEach_RunsEveryTask(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	var mu sync.Mutex
	seen := make(map[int]bool)

	ForEach(items, 8, func(n int) {
		mu.Lock()
		seen[n] = true
		mu.Unlock()
	})

	assert.Len(t, seen, 100)
}

func TestForEach_NeverExceedsLimit(t *testing.T) {
	const limit = 5

	var inFlight, peak atomic.Int64
	items := make([]int, 50)

	ForEach(items, limit, func(int) {
		current := inFlight.Add(1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
	})

	assert.LessOrEqual(t, peak.Load(), int64(limit))
	assert.Greater(t, peak.Load(), int64(1), "tasks should actually overlap")
}

func TestForEach_DrainsStragglers(t *testing.T) {
	// A task failure is recorded by the task itself; here we only assert
	// the pool drains every admitted task even when some are slow.
	var done atomic.Int64
	items := make([]int, 20)

	ForEach(items, 3, func(n int) {
		if n%2 == 0 {
			time.Sleep(2 * time.Millisecond)
		}
		done.Add(1)
	})

	assert.Equal(t, int64(20), done.Load())
}

func TestForEach_ZeroLimitStillProgresses(t *testing.T) {
	var count atomic.Int64
	ForEach([]int{1, 2, 3}, 0, func(int) {
		count.Add(1)
	})
	assert.Equal(t, int64(3), count.Load())
}

func TestForEach_EmptyInput(t *testing.T) {
	called := false
	ForEach(nil, 4, func(struct{}) {
		called = true
	})
	assert.False(t, called)
}
