package telegram

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// Dispatcher runs the jobs of one caller one at a time, in the order they
// were enqueued. Jobs of different callers run in parallel. A caller's
// worker goroutine exits as soon as its queue is empty.
type Dispatcher struct {
	log *logrus.Entry

	mu     sync.Mutex
	queues map[int64][]func() // present while a worker runs for the caller
	wg     sync.WaitGroup
}

func NewDispatcher(log *logrus.Entry) *Dispatcher {
	return &Dispatcher{log: log, queues: make(map[int64][]func())}
}

// Enqueue appends job to the caller's queue. It never blocks on the job.
func (d *Dispatcher) Enqueue(callerID int64, job func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	q, running := d.queues[callerID]
	d.queues[callerID] = append(q, job)
	if running {
		return
	}
	d.wg.Add(1)
	go d.drain(callerID)
}

func (d *Dispatcher) drain(callerID int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		q := d.queues[callerID]
		if len(q) == 0 {
			delete(d.queues, callerID)
			d.mu.Unlock()
			return
		}
		job := q[0]
		q[0] = nil
		d.queues[callerID] = q[1:]
		d.mu.Unlock()

		d.run(callerID, job)
	}
}

func (d *Dispatcher) run(callerID int64, job func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithFields(logrus.Fields{
				"caller_id": callerID,
				"panic":     r,
				"stack":     string(debug.Stack()),
			}).Error("Panic recovered in caller queue")
		}
	}()
	job()
}

// Wait blocks until every queued job has run. Stop feeding updates first.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
