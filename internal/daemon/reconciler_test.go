package daemon

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// inlineExecutor runs the function on the caller, standing in for the IPC
// worker.
type inlineExecutor struct {
	calls int
}

func (e *inlineExecutor) Exec(fn func()) {
	e.calls++
	fn()
}

func TestReconcileNow_RunsThePassOnTheWorker(t *testing.T) {
	exec := &inlineExecutor{}
	passes := 0
	r := NewReconciler(time.Minute, exec, func() (int, error) {
		passes++
		return 0, nil
	})

	r.ReconcileNow()
	require.Equal(t, 1, exec.calls)
	require.Equal(t, 1, passes)
}

func TestReconcileNow_SurvivesErrorsAndPanics(t *testing.T) {
	exec := &inlineExecutor{}

	r := NewReconciler(time.Minute, exec, func() (int, error) {
		return 0, fmt.Errorf("window system went away")
	})
	r.ReconcileNow()

	r = NewReconciler(time.Minute, exec, func() (int, error) {
		panic("tree corrupted")
	})
	require.NotPanics(t, r.ReconcileNow)
}

func TestRun_StopsOnCancel(t *testing.T) {
	exec := &inlineExecutor{}
	ticked := make(chan struct{}, 16)
	r := NewReconciler(5*time.Millisecond, exec, func() (int, error) {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return 0, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("reconciler never ticked")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop on cancel")
	}
}

func TestNewReconciler_DefaultInterval(t *testing.T) {
	r := NewReconciler(0, &inlineExecutor{}, func() (int, error) { return 0, nil })
	require.Equal(t, 10*time.Second, r.interval)
}
