package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindSearch  jobKind = "search"
	jobKindSummary jobKind = "summary"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusCanceled  jobStatus = "canceled"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs one job per kind at a time. Starting a job cancels the
// previous job of the same kind; Stop cancels everything.
type jobBus struct {
	counter int64

	root     context.Context
	stopRoot context.CancelFunc

	mu      sync.Mutex
	running map[jobKind]context.CancelFunc
}

func newJobBus() *jobBus {
	root, cancel := context.WithCancel(context.Background())
	return &jobBus{
		root:     root,
		stopRoot: cancel,
		running:  map[jobKind]context.CancelFunc{},
	}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	ctx, cancel := context.WithCancel(b.root)
	b.mu.Lock()
	if previous, ok := b.running[kind]; ok {
		previous()
	}
	b.running[kind] = cancel
	b.mu.Unlock()

	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		defer cancel()
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		switch {
		case err == nil:
			snapshot.Status = jobStatusSucceeded
		case errors.Is(err, context.Canceled):
			snapshot.Status = jobStatusCanceled
			snapshot.Err = err.Error()
		default:
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s %s (duration=%s, err=%v)", id, kind, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

func (b *jobBus) Cancel(kind jobKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cancel, ok := b.running[kind]; ok {
		cancel()
		delete(b.running, kind)
	}
}

// Stop cancels every in-flight job. The bus cannot start new work afterwards.
func (b *jobBus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind, cancel := range b.running {
		cancel()
		delete(b.running, kind)
	}
	b.stopRoot()
}
