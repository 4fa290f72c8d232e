package services

import (
	"sync"
)

const workerQueueSize = 64

// RoomWorkers serializes all mutating operations per room code. Each room
// gets one goroutine consuming a FIFO queue of commands, so concurrent
// joins, leaves, toggles and bans on the same room never interleave, while
// different rooms proceed in parallel. No global lock.
type RoomWorkers struct {
	mu      sync.Mutex
	workers map[string]*roomWorker
	closed  bool
	wg      sync.WaitGroup
}

type roomWorker struct {
	queue chan func()
}

func NewRoomWorkers() *RoomWorkers {
	return &RoomWorkers{workers: make(map[string]*roomWorker)}
}

// Do enqueues fn on the worker for roomCode, creating the worker lazily.
// Commands for one room run in submission order; fn must complete its
// in-memory work synchronously so the next command observes it. Returns
// false after Shutdown.
func (w *RoomWorkers) Do(roomCode string, fn func()) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	worker, ok := w.workers[roomCode]
	if !ok {
		worker = &roomWorker{queue: make(chan func(), workerQueueSize)}
		w.workers[roomCode] = worker
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for cmd := range worker.queue {
				cmd()
			}
		}()
	}
	w.mu.Unlock()

	worker.queue <- fn
	return true
}

// DoSync enqueues fn and waits for it to run. Handy for request paths that
// need the command's result before replying.
func (w *RoomWorkers) DoSync(roomCode string, fn func()) {
	done := make(chan struct{})
	if !w.Do(roomCode, func() {
		defer close(done)
		fn()
	}) {
		return
	}
	<-done
}

// Shutdown stops accepting commands and drains every queue.
func (w *RoomWorkers) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, worker := range w.workers {
		close(worker.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
