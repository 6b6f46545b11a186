package daemon

import (
	"context"
	"log"
	"time"
)

// Executor serializes a function onto the daemon's command worker so a
// reconciliation pass never interleaves with commands or window events.
type Executor interface {
	Exec(fn func())
}

// Reconciler periodically re-syncs the tiling layouts against the window
// system. Destroy notifications can be lost; without repair the layouts keep
// reserving space for windows that no longer exist.
type Reconciler struct {
	interval time.Duration
	exec     Executor
	pass     func() (int, error)
}

// NewReconciler returns a reconciler running pass every interval, 10s when
// the interval is zero or negative.
func NewReconciler(interval time.Duration, exec Executor, pass func() (int, error)) *Reconciler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Reconciler{
		interval: interval,
		exec:     exec,
		pass:     pass,
	}
}

// Run blocks until the context is cancelled, reconciling on every tick.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("reconciler started (interval %s)", r.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("reconciler stopped")
			return
		case <-ticker.C:
			r.ReconcileNow()
		}
	}
}

// ReconcileNow schedules one reconciliation pass on the worker and returns
// once it ran.
func (r *Reconciler) ReconcileNow() {
	r.exec.Exec(func() {
		// A panicking pass must not take the command worker down with it.
		defer func() {
			if v := recover(); v != nil {
				log.Printf("reconciler: recovered: %v", v)
			}
		}()

		removed, err := r.pass()
		if err != nil {
			log.Printf("reconciler: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("reconciler: dropped %d stale windows", removed)
		}
	})
}
