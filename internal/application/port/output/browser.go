package output

import (
	"context"

	"uigen-bridge/internal/domain/entity"
)

// PageDriver is the abstract browser capability the core consumes. Any
// concrete automation backend implements this surface; the usecases never
// see selectors beyond what their own configuration supplies.
type PageDriver interface {
	Navigate(ctx context.Context, url string) error
	ObserveActions(ctx context.Context) ([]entity.ObservedAction, error)
	PerformAction(ctx context.Context, label string) error
	Fill(ctx context.Context, selector, text string) error
	PressEnter(ctx context.Context) error
	ReadClipboard(ctx context.Context) (string, error)
	EvalQuery(ctx context.Context, js string) (string, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	Cookies(ctx context.Context) ([]entity.Cookie, error)
	SetCookies(ctx context.Context, cookies []entity.Cookie) error

	CurrentURL() string
	Close()
}

// DriverFactory hands out one driver per request. Drivers are never
// shared across concurrent requests; the orchestrator owns the instance
// for the full request and releases it on every exit path.
type DriverFactory interface {
	Acquire(ctx context.Context) (PageDriver, error)
}
