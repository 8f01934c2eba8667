// Package authflow drives the federated login sequence when the remote
// site demands it. Whether login is needed is decided the same way the
// poller decides completion: by matching the labels of currently visible
// actions.
package authflow

import (
	"context"
	"strings"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

type State int

const (
	StateUnknown State = iota
	StateCheckingLoginRequired
	StateNotRequired
	StateLoggingIn
	StateAuthenticated
	StateLoginFailed
)

// Credential env keys. Read lazily: when no login marker is visible the
// flow never touches them.
const (
	EnvEmail    = "GENERATOR_EMAIL"
	EnvPassword = "GENERATOR_PASSWORD"
)

var loginMarkers = []string{"sign in", "log in", "login"}

type Config struct {
	// ProviderLabel is the federated-identity button on the sign-in page.
	ProviderLabel string
	// EmailSelector and PasswordSelector locate the provider's form
	// fields.
	EmailSelector    string
	PasswordSelector string
}

func DefaultConfig() Config {
	return Config{
		ProviderLabel:    "Continue with GitHub",
		EmailSelector:    `input[type="email"], input#login_field`,
		PasswordSelector: `input[type="password"]`,
	}
}

type Flow struct {
	driver output.PageDriver
	config output.ConfigPort
	logger output.LoggerPort
	cfg    Config
	state  State
}

func New(driver output.PageDriver, config output.ConfigPort, logger output.LoggerPort, cfg Config) *Flow {
	if cfg.ProviderLabel == "" {
		cfg = DefaultConfig()
	}
	return &Flow{
		driver: driver,
		config: config,
		logger: logger,
		cfg:    cfg,
		state:  StateUnknown,
	}
}

func (f *Flow) State() State { return f.state }

// Run inspects the page and, when required, performs the login sequence.
// Returns nil both when login was not needed and when it succeeded; a
// failed login is an *entity.AuthenticationError and is never retried
// here (a retry with possibly-wrong credentials risks a lockout).
func (f *Flow) Run(ctx context.Context) error {
	f.state = StateCheckingLoginRequired

	actions, err := f.driver.ObserveActions(ctx)
	if err != nil {
		return &entity.DriverError{Op: "observe login state", Err: err}
	}

	marker := loginMarker(actions)
	if marker == "" {
		f.state = StateNotRequired
		f.logger.Debug("No login markers visible, skipping authentication")
		return nil
	}

	f.state = StateLoggingIn
	f.logger.Info("Login required", "marker", marker)

	creds := entity.Credentials{
		Email:    f.config.Get(EnvEmail),
		Password: f.config.Get(EnvPassword),
	}
	if !creds.Configured() {
		f.state = StateLoginFailed
		return &entity.AuthenticationError{Reason: "no credentials configured"}
	}

	if err := f.login(ctx, marker, creds); err != nil {
		f.state = StateLoginFailed
		return err
	}

	// Post-submit verification: a surviving login marker means the
	// provider rejected us. The caller must not persist cookies captured
	// in this state.
	actions, err = f.driver.ObserveActions(ctx)
	if err != nil {
		f.state = StateLoginFailed
		return &entity.DriverError{Op: "verify login", Err: err}
	}
	if m := loginMarker(actions); m != "" {
		f.state = StateLoginFailed
		return &entity.AuthenticationError{Reason: "post-login verification failed"}
	}

	f.state = StateAuthenticated
	f.logger.Info("Authenticated")
	return nil
}

// login runs the fixed drive sequence: sign-in affordance, provider
// button, credentials, submit.
func (f *Flow) login(ctx context.Context, signInLabel string, creds entity.Credentials) error {
	if err := f.driver.PerformAction(ctx, signInLabel); err != nil {
		return &entity.DriverError{Op: "click sign-in", Err: err}
	}
	if err := f.driver.PerformAction(ctx, f.cfg.ProviderLabel); err != nil {
		return &entity.DriverError{Op: "select identity provider", Err: err}
	}
	if err := f.driver.Fill(ctx, f.cfg.EmailSelector, creds.Email); err != nil {
		return &entity.DriverError{Op: "fill identity", Err: err}
	}
	if err := f.driver.Fill(ctx, f.cfg.PasswordSelector, creds.Password); err != nil {
		return &entity.DriverError{Op: "fill secret", Err: err}
	}
	if err := f.driver.PressEnter(ctx); err != nil {
		return &entity.DriverError{Op: "submit provider form", Err: err}
	}
	return nil
}

// loginMarker returns the label of the first visible sign-in affordance,
// empty when the page shows none.
func loginMarker(actions []entity.ObservedAction) string {
	for _, a := range actions {
		if matchesLogin(a.Label) {
			return a.Label
		}
	}
	return ""
}

func matchesLogin(label string) bool {
	lower := strings.ToLower(label)
	for _, m := range loginMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
