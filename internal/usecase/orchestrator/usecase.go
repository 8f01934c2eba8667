// Package orchestrator sequences one generation request end to end:
// driver acquisition, session restore or login, prompt submission,
// completion polling, extraction, session persistence.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"uigen-bridge/internal/application/port/input"
	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

// Awaiter and FileExtractor are the orchestrator's view of the poller and
// extractor; both are built per request around the request's driver.
type Awaiter interface {
	Await(ctx context.Context) error
}

type FileExtractor interface {
	Extract(ctx context.Context) (*entity.GenerationResult, error)
}

type AuthRunner interface {
	Run(ctx context.Context) error
}

type Config struct {
	// TargetURL is the generator site.
	TargetURL string
	// PromptSelector locates the prompt input field.
	PromptSelector string
	// DebugDir receives failure screenshots; empty disables captures.
	DebugDir string
}

var _ input.PromptExecutor = (*UseCase)(nil)

type UseCase struct {
	drivers  output.DriverFactory
	sessions output.SessionStore
	logger   output.LoggerPort
	cfg      Config

	newAuthFlow  func(driver output.PageDriver) AuthRunner
	newPoller    func(driver output.PageDriver) Awaiter
	newExtractor func(driver output.PageDriver) FileExtractor
}

func New(
	drivers output.DriverFactory,
	sessions output.SessionStore,
	logger output.LoggerPort,
	cfg Config,
	newAuthFlow func(output.PageDriver) AuthRunner,
	newPoller func(output.PageDriver) Awaiter,
	newExtractor func(output.PageDriver) FileExtractor,
) *UseCase {
	return &UseCase{
		drivers:      drivers,
		sessions:     sessions,
		logger:       logger,
		cfg:          cfg,
		newAuthFlow:  newAuthFlow,
		newPoller:    newPoller,
		newExtractor: newExtractor,
	}
}

// Execute runs one generation request. The driver is owned exclusively by
// this request and released on every exit path.
func (uc *UseCase) Execute(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error) {
	log := uc.logger.WithField("request_id", req.ID)
	log.Info("Generation request accepted", "prompt_len", len(req.Prompt))

	driver, err := uc.drivers.Acquire(ctx)
	if err != nil {
		return nil, &entity.DriverError{Op: "acquire", Err: err}
	}
	defer driver.Close()

	uc.restoreSession(ctx, driver, log)

	if err := driver.Navigate(ctx, uc.cfg.TargetURL); err != nil {
		return nil, &entity.DriverError{Op: "navigate", Err: err}
	}

	if err := uc.newAuthFlow(driver).Run(ctx); err != nil {
		return nil, err
	}

	if err := uc.submitPrompt(ctx, driver, req.Prompt); err != nil {
		return nil, err
	}

	if err := uc.newPoller(driver).Await(ctx); err != nil {
		uc.captureFailure(ctx, driver, log, req.ID)
		return nil, err
	}

	result, err := uc.newExtractor(driver).Extract(ctx)
	if err != nil {
		uc.captureFailure(ctx, driver, log, req.ID)
		return nil, err
	}

	// Happens-after extraction: a saved session always implies a prior
	// successful authenticated interaction.
	uc.persistSession(ctx, driver, log)

	log.Info("Generation request finished", "files", result.Len())
	return result, nil
}

func (uc *UseCase) submitPrompt(ctx context.Context, driver output.PageDriver, prompt string) error {
	if err := driver.Fill(ctx, uc.cfg.PromptSelector, prompt); err != nil {
		return &entity.DriverError{Op: "fill prompt", Err: err}
	}
	if err := driver.PressEnter(ctx); err != nil {
		return &entity.DriverError{Op: "submit prompt", Err: err}
	}
	return nil
}

// restoreSession applies previously saved cookies. Absence and corrupt
// files are not errors; a restore failure just means the auth flow will
// run.
func (uc *UseCase) restoreSession(ctx context.Context, driver output.PageDriver, log output.LoggerPort) {
	state, err := uc.sessions.Load()
	if err != nil {
		log.Warn("Session load failed", "error", err)
		return
	}
	if state.Empty() {
		log.Debug("No saved session")
		return
	}
	if err := driver.SetCookies(ctx, state.Cookies); err != nil {
		log.Warn("Session restore failed", "error", err)
		return
	}
	log.Debug("Session restored", "cookies", len(state.Cookies))
}

// persistSession saves the driver's cookie jar. Failures are logged and
// non-fatal: the request already succeeded.
func (uc *UseCase) persistSession(ctx context.Context, driver output.PageDriver, log output.LoggerPort) {
	cookies, err := driver.Cookies(ctx)
	if err != nil {
		log.Warn("Cookie read failed, session not persisted", "error", err)
		return
	}
	if err := uc.sessions.Save(&entity.SessionState{Cookies: cookies}); err != nil {
		log.Warn("Session save failed", "error", err)
		return
	}
	log.Debug("Session persisted", "cookies", len(cookies))
}

func (uc *UseCase) captureFailure(ctx context.Context, driver output.PageDriver, log output.LoggerPort, id string) {
	if uc.cfg.DebugDir == "" {
		return
	}
	shot, err := driver.Screenshot(ctx)
	if err != nil {
		log.Debug("Failure screenshot unavailable", "error", err)
		return
	}
	if err := os.MkdirAll(uc.cfg.DebugDir, 0o755); err != nil {
		log.Debug("Debug dir not writable", "error", err)
		return
	}
	path := filepath.Join(uc.cfg.DebugDir, fmt.Sprintf("failure_%s.%s", id, shot.Format))
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		log.Debug("Failure screenshot not written", "error", err)
		return
	}
	log.Info("Failure screenshot written", "path", path, "url", driver.CurrentURL())
}
