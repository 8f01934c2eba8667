package rod

import (
	"context"

	"uigen-bridge/internal/application/port/output"
)

var _ output.DriverFactory = (*Factory)(nil)

// Factory creates one independent browser session per request. No
// pooling: concurrent requests each pay for their own session, which is
// a documented resource-exhaustion risk under load.
type Factory struct {
	cfg    Config
	logger output.LoggerPort
}

func NewFactory(cfg Config, logger output.LoggerPort) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

func (f *Factory) Acquire(ctx context.Context) (output.PageDriver, error) {
	f.logger.Debug("Acquiring browser session", "remote", f.cfg.ControlURL != "")
	return NewAdapter(ctx, f.cfg, f.logger)
}
