// Package worker provides a worker pool for parallel game processing.
package worker

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// WorkItem is the text of one game waiting to be processed.
type WorkItem struct {
	Index  int    // Position in the input, 0-based across all sources
	Source string // File name or "stdin"
	Text   string
}

// ProcessResult is what processing one WorkItem produced.
type ProcessResult struct {
	Index      int
	Source     string
	Game       *chess.Game       // nil if the text did not parse
	InitialFEN string            // Position replay started from
	State      *engine.GameState // Position after replay; nil without replay
	Plies      int               // Plies replayed successfully
	Err        error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel game processing.
type Pool struct {
	numWorkers  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool{
		numWorkers:  numWorkers,
		workChan:    make(chan WorkItem, bufferSize),
		resultChan:  make(chan ProcessResult, bufferSize),
		processFunc: processFunc,
	}
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// ProcessAll runs items through a started pool, closes it, and returns the
// results sorted by Index. The pool cannot be reused afterwards.
func (p *Pool) ProcessAll(items []WorkItem) []ProcessResult {
	go func() {
		for _, item := range items {
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for result := range p.Results() {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}
