package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func blockingRunner(started chan<- struct{}) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if started != nil {
			close(started)
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

func runJob(t *testing.T, cmd tea.Cmd) jobResultEnvelope {
	t.Helper()
	msgs := collectMsgs(cmd)
	if len(msgs) != 2 {
		t.Fatalf("expected start and result messages, got %d", len(msgs))
	}
	if signal, ok := msgs[0].(jobSignalMsg); !ok || signal.Snapshot.Status != jobStatusRunning {
		t.Fatalf("first message should be a running signal, got %#v", msgs[0])
	}
	env, ok := msgs[1].(jobResultEnvelope)
	if !ok {
		t.Fatalf("second message should be a result envelope, got %T", msgs[1])
	}
	return env
}

func TestJobBusReportsSuccessAndFailure(t *testing.T) {
	bus := newJobBus()
	defer bus.Stop()

	ok := runJob(t, bus.Start(jobKindSearch, func(context.Context) (tea.Msg, error) {
		return "payload", nil
	}))
	if ok.Snapshot.Status != jobStatusSucceeded || ok.Payload != "payload" {
		t.Fatalf("unexpected success snapshot %+v", ok)
	}
	if ok.Snapshot.ID != "search-1" {
		t.Fatalf("unexpected job id %q", ok.Snapshot.ID)
	}

	failed := runJob(t, bus.Start(jobKindSummary, func(context.Context) (tea.Msg, error) {
		return nil, errors.New("nope")
	}))
	if failed.Snapshot.Status != jobStatusFailed || failed.Snapshot.Err != "nope" {
		t.Fatalf("unexpected failure snapshot %+v", failed.Snapshot)
	}
	if failed.Snapshot.ID != "summary-2" {
		t.Fatalf("job ids should keep counting, got %q", failed.Snapshot.ID)
	}
}

func TestJobBusStartCancelsPreviousOfSameKind(t *testing.T) {
	bus := newJobBus()
	defer bus.Stop()

	first := bus.Start(jobKindSearch, blockingRunner(nil))
	other := bus.Start(jobKindSummary, func(ctx context.Context) (tea.Msg, error) {
		return nil, ctx.Err()
	})
	bus.Start(jobKindSearch, blockingRunner(nil))

	if env := runJob(t, first); env.Snapshot.Status != jobStatusCanceled {
		t.Fatalf("superseded job should be canceled, got %q", env.Snapshot.Status)
	}
	if env := runJob(t, other); env.Snapshot.Status != jobStatusSucceeded {
		t.Fatalf("other kinds should be untouched, got %q", env.Snapshot.Status)
	}
}

func TestJobBusCancel(t *testing.T) {
	bus := newJobBus()
	defer bus.Stop()

	cmd := bus.Start(jobKindSummary, blockingRunner(nil))
	bus.Cancel(jobKindSummary)
	bus.Cancel(jobKindSummary)

	if env := runJob(t, cmd); env.Snapshot.Status != jobStatusCanceled {
		t.Fatalf("canceled job reported %q", env.Snapshot.Status)
	}
}

func TestJobBusStopCancelsRunningJobs(t *testing.T) {
	bus := newJobBus()
	started := make(chan struct{})
	cmd := bus.Start(jobKindSummary, blockingRunner(started))

	done := make(chan []tea.Msg, 1)
	go func() {
		done <- collectMsgs(cmd)
	}()
	<-started
	bus.Stop()

	msgs := <-done
	env, ok := msgs[len(msgs)-1].(jobResultEnvelope)
	if !ok {
		t.Fatalf("expected a result envelope, got %T", msgs[len(msgs)-1])
	}
	if env.Snapshot.Status != jobStatusCanceled {
		t.Fatalf("job should be canceled by Stop, got %q", env.Snapshot.Status)
	}
}
