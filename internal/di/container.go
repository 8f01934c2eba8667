package di

import (
	"fmt"
	"time"

	"uigen-bridge/internal/application/port/input"
	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/infrastructure/browser/rod"
	"uigen-bridge/internal/infrastructure/logger"
	"uigen-bridge/internal/infrastructure/session"
	"uigen-bridge/internal/usecase/authflow"
	"uigen-bridge/internal/usecase/extractor"
	"uigen-bridge/internal/usecase/orchestrator"
	"uigen-bridge/internal/usecase/poller"
)

type Config struct {
	AppEnv string

	TargetURL      string
	PromptSelector string

	// ControlURL of the remote automation backend; empty launches local
	// browsers.
	ControlURL string
	Headless   bool

	SessionFile string
	DebugDir    string

	PollDeadline time.Duration
	PollInterval time.Duration

	ExtractStrategy string // "clipboard" or "dom"
	ExtractAttempts int
	ExtractDelay    time.Duration
}

type Container struct {
	Logger   output.LoggerPort
	Sessions output.SessionStore
	Executor input.PromptExecutor
}

func NewContainer(envService output.ConfigPort, cfg Config) (*Container, error) {
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store := session.NewFileStore(cfg.SessionFile, log)

	browserCfg := rod.DefaultConfig()
	browserCfg.ControlURL = cfg.ControlURL
	browserCfg.Headless = cfg.Headless
	drivers := rod.NewFactory(browserCfg, log)

	newAuthFlow := func(d output.PageDriver) orchestrator.AuthRunner {
		return authflow.New(d, envService, log, authflow.DefaultConfig())
	}

	newPoller := func(d output.PageDriver) orchestrator.Awaiter {
		dom := extractor.NewDOM(d, log)
		return poller.New(d, dom.Probe, log, poller.Config{
			Deadline: cfg.PollDeadline,
			Interval: cfg.PollInterval,
		})
	}

	newExtractor := func(d output.PageDriver) orchestrator.FileExtractor {
		var strategy extractor.Strategy
		if cfg.ExtractStrategy == "dom" {
			strategy = extractor.NewDOM(d, log)
		} else {
			strategy = extractor.NewClipboard(d, log, extractor.ClipboardConfig{
				Attempts: cfg.ExtractAttempts,
				Delay:    cfg.ExtractDelay,
			})
		}
		return extractor.New(strategy, log)
	}

	uc := orchestrator.New(
		drivers,
		store,
		log,
		orchestrator.Config{
			TargetURL:      cfg.TargetURL,
			PromptSelector: cfg.PromptSelector,
			DebugDir:       cfg.DebugDir,
		},
		newAuthFlow,
		newPoller,
		newExtractor,
	)

	return &Container{
		Logger:   log,
		Sessions: store,
		Executor: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
