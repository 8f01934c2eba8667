// Package poller decides the outcome of an asynchronous generation from
// the only signal available: point-in-time inspection of the interactive
// elements visible on the remote page.
package poller

import (
	"context"
	"errors"
	"time"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
	"uigen-bridge/internal/retry"
)

const (
	defaultDeadline = 180 * time.Second
	defaultInterval = 3 * time.Second
)

// Probe is a best-effort secondary completion check, consulted only when
// a snapshot carries neither a terminal nor a progress marker. A probe
// that finds literal code content counts as a positive completion signal.
type Probe func(ctx context.Context) bool

type Config struct {
	Deadline time.Duration
	Interval time.Duration

	// Sleep is injected by tests; nil means real sleeping.
	Sleep retry.SleepFunc
}

type Poller struct {
	driver   output.PageDriver
	probe    Probe
	logger   output.LoggerPort
	policy   retry.Policy
	deadline time.Duration
}

func New(driver output.PageDriver, probe Probe, logger output.LoggerPort, cfg Config) *Poller {
	if cfg.Deadline <= 0 {
		cfg.Deadline = defaultDeadline
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	attempts := int(cfg.Deadline / cfg.Interval)
	if attempts < 1 {
		attempts = 1
	}

	return &Poller{
		driver: driver,
		probe:  probe,
		logger: logger,
		policy: retry.Policy{
			MaxAttempts: attempts,
			Interval:    cfg.Interval,
			Sleep:       cfg.Sleep,
		},
		deadline: cfg.Deadline,
	}
}

// Await blocks until the generation completes (nil), the site reports an
// explicit failure (*entity.GenerationFailedError), or the deadline runs
// out (*entity.GenerationTimeoutError).
func (p *Poller) Await(ctx context.Context) error {
	err := p.policy.Run(ctx, func(ctx context.Context, attempt int) (bool, error) {
		actions, err := p.driver.ObserveActions(ctx)
		if err != nil {
			// Observation hiccups are transient; the deadline caps them.
			p.logger.Warn("Observation failed, continuing to poll", "attempt", attempt, "error", err)
			return false, nil
		}

		c := Classify(actions)
		switch c.Verdict {
		case VerdictFailed:
			return false, &entity.GenerationFailedError{Reason: c.Marker}
		case VerdictCompleted:
			p.logger.Debug("Completion marker observed", "marker", c.Marker, "attempt", attempt)
			return true, nil
		case VerdictGenerating:
			p.logger.Debug("Still generating", "marker", c.Marker, "attempt", attempt)
			return false, nil
		}

		// No marker at all. The page may already show code without any of
		// the known affordances, so ask the probe before waiting more.
		if p.probe != nil && p.probe(ctx) {
			p.logger.Debug("Structural probe found code content", "attempt", attempt)
			return true, nil
		}
		return false, nil
	})

	if errors.Is(err, retry.ErrExhausted) {
		return &entity.GenerationTimeoutError{Deadline: p.deadline}
	}
	return err
}
