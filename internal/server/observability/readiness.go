package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readiness tracks whether storage answered the most recent probe.
type Readiness struct {
	pinger  Pinger
	timeout time.Duration
	logger  logging.Logger
	ready   atomic.Bool
}

func NewReadiness(p Pinger, timeout time.Duration, logger logging.Logger) *Readiness {
	return &Readiness{pinger: p, timeout: timeout, logger: logger.With("module", "readiness")}
}

// Ready reports the result of the last probe.
func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// Probe pings storage once and records the outcome.
func (r *Readiness) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.pinger.Ping(ctx)
	ok := err == nil
	if prev := r.ready.Swap(ok); prev != ok {
		if ok {
			r.logger.Info(ctx, "storage reachable")
		} else {
			r.logger.Warn(ctx, "storage unreachable", "error", err)
		}
	}
	return ok
}

// Run probes immediately and then every interval until ctx is done. onChange,
// if set, is called with every probe result.
func (r *Readiness) Run(ctx context.Context, interval time.Duration, onChange func(ready bool)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok := r.Probe(ctx)
		if onChange != nil {
			onChange(ok)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
