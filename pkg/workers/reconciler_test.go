package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorker struct {
	BaseWorker
	reconciled chan time.Time
}

func newFakeWorker() *fakeWorker {
	return &fakeWorker{
		BaseWorker: BaseWorker{
			ID:         "test",
			WorkerType: "test",
		},
		reconciled: make(chan time.Time, 100),
	}
}

func (w *fakeWorker) Start() { w.StartWorker(w) }
func (w *fakeWorker) Stop()  { w.StopWorker(w) }

func (w *fakeWorker) Reconcile() []error {
	w.reconciled <- time.Now()
	return nil
}

func (w *fakeWorker) GetRepeatInterval() time.Duration {
	return 10 * time.Millisecond
}

func TestReconciler_runsImmediatelyAndOnInterval(t *testing.T) {
	worker := newFakeWorker()
	worker.Start()
	defer worker.Stop()

	assert.True(t, worker.IsRunning())

	// The first reconcile happens before the first tick.
	select {
	case <-worker.reconciled:
	case <-time.After(time.Second):
		t.Fatal("worker never ran its initial reconcile")
	}

	// Later runs arrive on the repeat interval.
	select {
	case <-worker.reconciled:
	case <-time.After(time.Second):
		t.Fatal("worker never ran a periodic reconcile")
	}
}

func TestReconciler_stopWaitsForTeardown(t *testing.T) {
	worker := newFakeWorker()
	worker.Start()

	select {
	case <-worker.reconciled:
	case <-time.After(time.Second):
		t.Fatal("worker never ran its initial reconcile")
	}

	worker.Stop()
	assert.False(t, worker.IsRunning())

	// Stopping an already stopped worker must not panic or block.
	require.NotPanics(t, worker.Stop)
}
