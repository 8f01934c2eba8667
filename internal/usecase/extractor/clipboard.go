package extractor

import (
	"context"
	"errors"
	"strings"
	"time"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
	"uigen-bridge/internal/retry"
)

const (
	defaultCopyAttempts = 5
	defaultCopyDelay    = 2 * time.Second
)

// activeTabJS resolves the label of the currently selected file tab,
// which is the filename the clipboard content belongs to.
const activeTabJS = `() => {
	const tab = document.querySelector('[role="tab"][aria-selected="true"]')
		|| document.querySelector('[role="tab"][data-state="active"]');
	return tab ? tab.textContent.trim() : '';
}`

// copyLabels are tried in order until one affordance is found.
var copyLabels = []string{"Copy code", "Copy"}

// ClipboardStrategy activates the copy affordance for the active file tab
// and reads the system clipboard back. The copy action races the read
// (the site writes the clipboard asynchronously), so the cycle is retried
// through the shared policy until the clipboard turns non-empty.
type ClipboardStrategy struct {
	driver output.PageDriver
	logger output.LoggerPort
	policy retry.Policy
}

type ClipboardConfig struct {
	Attempts int
	Delay    time.Duration

	Sleep retry.SleepFunc
}

func NewClipboard(driver output.PageDriver, logger output.LoggerPort, cfg ClipboardConfig) *ClipboardStrategy {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultCopyAttempts
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaultCopyDelay
	}
	return &ClipboardStrategy{
		driver: driver,
		logger: logger,
		policy: retry.Policy{MaxAttempts: cfg.Attempts, Interval: cfg.Delay, Sleep: cfg.Sleep},
	}
}

func (s *ClipboardStrategy) Name() string { return "clipboard" }

func (s *ClipboardStrategy) Extract(ctx context.Context) (*entity.GenerationResult, error) {
	var content string

	err := s.policy.Run(ctx, func(ctx context.Context, attempt int) (bool, error) {
		if err := s.activateCopy(ctx); err != nil {
			s.logger.Debug("Copy affordance not reachable", "attempt", attempt, "error", err)
			return false, nil
		}

		text, err := s.driver.ReadClipboard(ctx)
		if err != nil {
			s.logger.Debug("Clipboard read failed", "attempt", attempt, "error", err)
			return false, nil
		}
		if strings.TrimSpace(text) == "" {
			s.logger.Debug("Clipboard still empty", "attempt", attempt)
			return false, nil
		}

		content = text
		return true, nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return nil, &entity.ExtractionError{Attempts: s.policy.MaxAttempts}
		}
		return nil, err
	}

	result := entity.NewGenerationResult()
	result.Add(s.activeFilename(ctx), content)
	return result, nil
}

func (s *ClipboardStrategy) activateCopy(ctx context.Context) error {
	var lastErr error
	for _, label := range copyLabels {
		if err := s.driver.PerformAction(ctx, label); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// activeFilename inspects the active tab label; an unresolvable name maps
// to the fixed fallback instead of failing the extraction.
func (s *ClipboardStrategy) activeFilename(ctx context.Context) string {
	name, err := s.driver.EvalQuery(ctx, activeTabJS)
	if err != nil {
		s.logger.Warn("Active tab label not resolvable, using fallback filename", "error", err)
		return entity.FallbackFilename
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.FallbackFilename
	}
	return name
}
