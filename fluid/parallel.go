package fluid

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum row count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 32

// rowChunk represents a range of rows for a worker to process.
type rowChunk struct {
	start, end int
	fn         func(row int)
}

// workerPool runs row kernels on persistent goroutines. Every kernel writes
// only the cells of its own rows, so the join after dispatch is the only
// synchronisation point.
type workerPool struct {
	numWorkers int

	workChan chan rowChunk // sends work to workers
	doneChan chan struct{} // workers signal completion
	stopChan chan struct{} // signals workers to exit
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: workers}
}

// start launches the worker goroutines.
func (p *workerPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *workerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			for row := chunk.start; row < chunk.end; row++ {
				chunk.fn(row)
			}
			p.doneChan <- struct{}{}
		}
	}
}

// forRows calls fn for each row in [start, end) and returns once all rows
// are done.
func (p *workerPool) forRows(start, end int, fn func(row int)) {
	n := end - start
	if n <= 0 {
		return
	}

	if p == nil || p.numWorkers <= 1 || n < parallelThreshold {
		for row := start; row < end; row++ {
			fn(row)
		}
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		s := start + w*chunkSize
		e := s + chunkSize
		if e > end {
			e = end
		}
		if s >= e {
			continue
		}

		p.workChan <- rowChunk{start: s, end: e, fn: fn}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
