// Package extractor retrieves generated source text from the page after
// the poller reports completion. Two strategies exist because the remote
// UI has exposed code both as copyable tabs and as inline code blocks;
// which one works depends on the site revision currently deployed.
package extractor

import (
	"context"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

type Strategy interface {
	Name() string
	Extract(ctx context.Context) (*entity.GenerationResult, error)
}

type Extractor struct {
	strategy Strategy
	logger   output.LoggerPort
}

func New(strategy Strategy, logger output.LoggerPort) *Extractor {
	return &Extractor{strategy: strategy, logger: logger}
}

// Extract runs the configured strategy and validates the result. A
// mapping with zero non-empty entries is a failure even when no transport
// error occurred.
func (e *Extractor) Extract(ctx context.Context) (*entity.GenerationResult, error) {
	e.logger.Debug("Extracting generated code", "strategy", e.strategy.Name())

	result, err := e.strategy.Extract(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil || !result.HasContent() {
		return nil, &entity.ExtractionError{Attempts: 1}
	}

	e.logger.Info("Extraction complete", "strategy", e.strategy.Name(), "files", result.Len())
	return result, nil
}
