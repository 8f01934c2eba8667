package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
	"uigen-bridge/internal/infrastructure/logger"
	"uigen-bridge/internal/infrastructure/session"
	"uigen-bridge/internal/usecase/authflow"
	"uigen-bridge/internal/usecase/extractor"
	"uigen-bridge/internal/usecase/orchestrator"
	"uigen-bridge/internal/usecase/poller"
)

// e2eDriver simulates a generator page that is already done: the
// completion marker is visible on the first poll and the clipboard holds
// the generated component.
type e2eDriver struct {
	clipboard string
	activeTab string
	closes    int
}

func (d *e2eDriver) Navigate(ctx context.Context, url string) error { return nil }
func (d *e2eDriver) ObserveActions(ctx context.Context) ([]entity.ObservedAction, error) {
	return []entity.ObservedAction{
		{Type: "button", Label: "New Chat"},
		{Type: "button", Label: "Copy code"},
	}, nil
}
func (d *e2eDriver) PerformAction(ctx context.Context, label string) error { return nil }
func (d *e2eDriver) Fill(ctx context.Context, selector, text string) error { return nil }
func (d *e2eDriver) PressEnter(ctx context.Context) error                  { return nil }
func (d *e2eDriver) ReadClipboard(ctx context.Context) (string, error)     { return d.clipboard, nil }
func (d *e2eDriver) EvalQuery(ctx context.Context, js string) (string, error) {
	return d.activeTab, nil
}
func (d *e2eDriver) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return nil, errors.New("not implemented")
}
func (d *e2eDriver) Cookies(ctx context.Context) ([]entity.Cookie, error) {
	return []entity.Cookie{{Name: "sid", Value: "fresh"}}, nil
}
func (d *e2eDriver) SetCookies(ctx context.Context, cookies []entity.Cookie) error { return nil }
func (d *e2eDriver) CurrentURL() string                                            { return "https://example.test" }
func (d *e2eDriver) Close()                                                        { d.closes++ }

type e2eFactory struct{ driver *e2eDriver }

func (f *e2eFactory) Acquire(ctx context.Context) (output.PageDriver, error) {
	return f.driver, nil
}

type staticConfig map[string]string

func (c staticConfig) Get(key string) string     { return c[key] }
func (c staticConfig) MustGet(key string) string { return c[key] }
func (c staticConfig) GetWithDefault(key, def string) string {
	if v := c[key]; v != "" {
		return v
	}
	return def
}
func (c staticConfig) GetBool(key string, def bool) bool { return def }
func (c staticConfig) GetInt(key string, def int) int    { return def }

func instant(ctx context.Context, d time.Duration) error { return nil }

func TestEndToEnd_PromptToFiles(t *testing.T) {
	driver := &e2eDriver{
		clipboard: "export default function Login() {...}",
		activeTab: "login.tsx",
	}
	log := logger.NewNop()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), log)

	uc := orchestrator.New(
		&e2eFactory{driver: driver},
		store,
		log,
		orchestrator.Config{TargetURL: "https://example.test", PromptSelector: "textarea"},
		func(d output.PageDriver) orchestrator.AuthRunner {
			return authflow.New(d, staticConfig{}, log, authflow.DefaultConfig())
		},
		func(d output.PageDriver) orchestrator.Awaiter {
			dom := extractor.NewDOM(d, log)
			return poller.New(d, dom.Probe, log, poller.Config{
				Deadline: 10 * time.Second,
				Interval: time.Second,
				Sleep:    instant,
			})
		},
		func(d output.PageDriver) orchestrator.FileExtractor {
			return extractor.New(extractor.NewClipboard(d, log, extractor.ClipboardConfig{
				Attempts: 5,
				Delay:    2 * time.Second,
				Sleep:    instant,
			}), log)
		},
	)

	router := NewRouter(NewHandler(uc, log), "uigen-bridge-test")

	body := `{"prompt": "Create a modern login form with email and password fields"}`
	req := httptest.NewRequest(http.MethodPost, "/api/prompt", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"files": {"login.tsx": "export default function Login() {...}"}}`, rec.Body.String())
	assert.Equal(t, 1, driver.closes)

	// Session persisted after the successful run.
	state, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "sid", state.Cookies[0].Name)
}
