package junction

import (
	"context"
	"time"

	"junction/internal/observability"
)

// Start begins the idle-session sweep. It is a no-op if the sweep is already
// running or the junction is closed. The sweep stops when ctx is cancelled or
// Close is called.
func (j *Junction) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.cancel != nil {
		return
	}
	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})
	go j.sweepLoop(ctx, j.done)
}

func (j *Junction) sweepLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweepOnce()
		}
	}
}

// sweepOnce runs a single pass and keeps the loop alive if it panics.
func (j *Junction) sweepOnce() {
	defer func() {
		if r := recover(); r != nil {
			j.opts.Logger.Error().Interface("panic", r).Msg("sweep pass failed")
		}
	}()
	j.Sweep(j.opts.Now())
}

// Sweep evicts every peer idle for longer than the session timeout as of now
// and returns how many were evicted. Eviction is identical to Disconnect.
func (j *Junction) Sweep(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return 0
	}
	j.opts.Metrics.RecordSweep()

	evicted := 0
	for _, p := range j.sessions {
		if now.Sub(p.lastSeenAt) > j.opts.SessionTimeout {
			j.purgeLocked(p, observability.ReasonExpired)
			evicted++
		}
	}
	if evicted > 0 {
		j.opts.Logger.Info().
			Int("evicted", evicted).
			Int("remaining", len(j.sessions)).
			Msg("sweep evicted idle peers")
	}
	return evicted
}

// Close stops the sweep and purges every peer. Operations other than
// Disconnect, KnownHosts and ActivePeerCount fail with domain.ErrClosed
// afterwards. Close is idempotent.
func (j *Junction) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	for _, p := range j.sessions {
		j.purgeLocked(p, observability.ReasonShutdown)
	}
	cancel, done := j.cancel, j.done
	j.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	j.opts.Logger.Info().Msg("junction closed")
	return nil
}
