package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/service/worker"
)

type countingReassessor struct {
	calls atomic.Int64
	err   error
}

func (r *countingReassessor) ReassessAll(ctx context.Context) (int, error) {
	r.calls.Add(1)
	if r.err != nil {
		return 0, r.err
	}
	return 3, nil
}

func TestReassessWorker_RunsPeriodically(t *testing.T) {
	reassessor := &countingReassessor{}
	w := worker.NewReassessWorker(reassessor, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background()))

	deadline := time.After(2 * time.Second)
	for reassessor.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("worker did not run within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	w.Stop()
	stopped := reassessor.calls.Load()

	// no further cycles after Stop returns
	time.Sleep(50 * time.Millisecond)
	gt.N(t, reassessor.calls.Load()).Equal(stopped)
}

func TestReassessWorker_ContinuesAfterError(t *testing.T) {
	reassessor := &countingReassessor{err: context.DeadlineExceeded}
	w := worker.NewReassessWorker(reassessor, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background()))

	deadline := time.After(2 * time.Second)
	for reassessor.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("worker stopped retrying after an error")
		case <-time.After(5 * time.Millisecond):
		}
	}

	w.Stop()
}
