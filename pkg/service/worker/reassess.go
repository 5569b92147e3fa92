package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/themis/pkg/utils/logging"
)

// Reassessor re-runs classification across the whole register
type Reassessor interface {
	ReassessAll(ctx context.Context) (int, error)
}

// ReassessWorker periodically re-assesses every register record so stored
// assessments track policy changes.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ReassessWorker struct {
	reassessor Reassessor
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewReassessWorker creates a worker that re-assesses the register every interval
func NewReassessWorker(reassessor Reassessor, interval time.Duration) *ReassessWorker {
	return &ReassessWorker{
		reassessor: reassessor,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background loop. It does not block server startup.
func (w *ReassessWorker) Start(ctx context.Context) error {
	logging.Default().Info("reassess worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReassessWorker) Stop() {
	logging.Default().Info("reassess worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("reassess worker stopped")
}

func (w *ReassessWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.reassess(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("reassess cycle failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("reassess worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("reassess worker context cancelled")
			return
		}
	}
}

func (w *ReassessWorker) reassess(ctx context.Context) error {
	startTime := time.Now()

	count, err := w.reassessor.ReassessAll(ctx)
	if err != nil {
		return err
	}

	logging.Default().Info("reassess cycle completed",
		"activities", count,
		"duration", time.Since(startTime).String())
	return nil
}
