package worker

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		return ProcessResult{Index: item.Index, Source: item.Source}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func makeItems(n int) []WorkItem {
	items := make([]WorkItem, n)
	for i := range items {
		items[i] = WorkItem{Index: i, Source: "test", Text: fmt.Sprintf("1. e4 {game %d}", i)}
	}
	return items
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(4, 10, countingProcessFunc(&processed))
	pool.Start()

	const numItems = 10
	for _, item := range makeItems(numItems) {
		pool.Submit(item)
	}

	go pool.Close()

	resultCount := collectResults(pool)
	if resultCount != numItems {
		t.Errorf("results = %d; want %d", resultCount, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(2, 100, slowProcessFunc)
	pool.Start()

	const numItems = 50
	for _, item := range makeItems(numItems) {
		pool.Submit(item)
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(2, 10, noopProcessFunc())
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestPoolNumWorkers tests NumWorkers method.
func TestPoolNumWorkers(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid workers", 4, 4},
		{"minimum workers", 1, 1},
		{"zero defaults to 1", 0, 1},
		{"negative defaults to 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.input, 10, noopProcessFunc())
			if got := pool.NumWorkers(); got != tt.expected {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.expected)
			}
		})
	}
}

// TestProcessAllOrder checks that results come back in input order even
// when workers finish out of order.
func TestProcessAllOrder(t *testing.T) {
	variableDelayFunc := func(item WorkItem) ProcessResult {
		if item.Index%2 == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(4, 4, variableDelayFunc)
	pool.Start()

	const numItems = 20
	results := pool.ProcessAll(makeItems(numItems))
	if len(results) != numItems {
		t.Fatalf("received %d results; want %d", len(results), numItems)
	}
	for i, result := range results {
		if result.Index != i {
			t.Errorf("results[%d].Index = %d", i, result.Index)
		}
	}
}

func TestProcessAllEmpty(t *testing.T) {
	pool := NewPool(2, 2, noopProcessFunc())
	pool.Start()
	if results := pool.ProcessAll(nil); len(results) != 0 {
		t.Errorf("ProcessAll(nil) returned %d results", len(results))
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(8, 50, countingProcessFunc(&counter))
	pool.Start()

	const numItems = 100
	go func() {
		for _, item := range makeItems(numItems) {
			pool.Submit(item)
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}
