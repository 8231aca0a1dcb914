// Package tasks runs deferred side effects (notification fan-out, frequency
// tracking, broadcasts) decoupled from the triggering request. Delivery is
// best-effort: a job runs at least once per dispatch unless the process dies
// first, and no ordering is guaranteed relative to the caller's response.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const jobTimeout = 30 * time.Second

type job struct {
	name string
	fn   func(ctx context.Context) error
}

type Dispatcher struct {
	jobs chan job
	wg   sync.WaitGroup
}

func NewDispatcher(workers, buffer int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		jobs: make(chan job, buffer),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		if err := j.fn(ctx); err != nil {
			logrus.WithError(err).WithField("task", j.name).Error("Background task failed")
		}
		cancel()
	}
}

// Dispatch queues a background job. It blocks only when the buffer is full.
func (d *Dispatcher) Dispatch(name string, fn func(ctx context.Context) error) {
	d.jobs <- job{name: name, fn: fn}
}

// Stop drains queued jobs and waits for the workers to finish.
func (d *Dispatcher) Stop() {
	close(d.jobs)
	d.wg.Wait()
}
