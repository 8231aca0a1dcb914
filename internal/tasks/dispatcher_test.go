package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(2, 16)

	var ran int64
	for i := 0; i < 10; i++ {
		d.Dispatch("count", func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	d.Stop()
	assert.Equal(t, int64(10), atomic.LoadInt64(&ran))
}

func TestDispatcherSurvivesFailingJob(t *testing.T) {
	d := NewDispatcher(1, 4)

	var ran int64
	d.Dispatch("boom", func(ctx context.Context) error {
		return errors.New("boom")
	})
	d.Dispatch("after", func(ctx context.Context) error {
		atomic.AddInt64(&ran, 1)
		return nil
	})

	d.Stop()
	assert.Equal(t, int64(1), atomic.LoadInt64(&ran))
}
