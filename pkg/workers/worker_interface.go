// Package workers runs the periodic background jobs of the service.
package workers

import (
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultRepeatInterval is default interval with which workers Reconcile() method will be called.
// It is variable and not constant so that we could easily change this value in tests.
var DefaultRepeatInterval = 30 * time.Second

// Worker ...
type Worker interface {
	GetID() string
	GetWorkerType() string
	Start()
	Stop()
	Reconcile() []error
	GetStopChan() *chan struct{}
	GetSyncGroup() *sync.WaitGroup
	IsRunning() bool
	SetIsRunning(val bool)
	GetRepeatInterval() time.Duration
}

// BaseWorker ...
type BaseWorker struct {
	ID           string
	WorkerType   string
	Reconciler   Reconciler
	isRunning    bool
	imStop       chan struct{}
	syncTeardown sync.WaitGroup
}

// GetID ...
func (b *BaseWorker) GetID() string {
	return b.ID
}

// GetWorkerType ...
func (b *BaseWorker) GetWorkerType() string {
	return b.WorkerType
}

// GetStopChan ...
func (b *BaseWorker) GetStopChan() *chan struct{} {
	return &b.imStop
}

// GetSyncGroup ...
func (b *BaseWorker) GetSyncGroup() *sync.WaitGroup {
	return &b.syncTeardown
}

// IsRunning ...
func (b *BaseWorker) IsRunning() bool {
	return b.isRunning
}

// SetIsRunning ...
func (b *BaseWorker) SetIsRunning(val bool) {
	b.isRunning = val
}

// StartWorker ...
func (b *BaseWorker) StartWorker(w Worker) {
	b.Reconciler.Start(w)
}

// StopWorker ...
func (b *BaseWorker) StopWorker(w Worker) {
	glog.Infof("Stopping reconciling worker id = %s", b.ID)
	b.Reconciler.Stop(w)
}

// GetRepeatInterval ...
func (b *BaseWorker) GetRepeatInterval() time.Duration {
	return DefaultRepeatInterval
}
