// Package rod implements the page driver on go-rod. One Adapter wraps
// one browser session with a single page; the factory hands out a fresh
// instance per request.
package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

var _ output.PageDriver = (*Adapter)(nil)

const (
	defaultTimeout     = 10 * time.Second
	defaultSlowMotion  = 200 * time.Millisecond
	maxObservedActions = 200
)

type Config struct {
	// ControlURL connects to a remote automation backend; empty launches
	// a local browser.
	ControlURL string
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
}

func DefaultConfig() Config {
	return Config{
		Headless:   true,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
	}
}

type Adapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	logger   output.LoggerPort
}

func NewAdapter(ctx context.Context, cfg Config, logger output.LoggerPort) (*Adapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var l *launcher.Launcher
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l = launcher.New().
			Headless(cfg.Headless).
			NoSandbox(cfg.NoSandbox).
			Delete("use-mock-keychain")

		url, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
			l.Cleanup()
		}
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		browser.Close()
		if l != nil {
			l.Kill()
			l.Cleanup()
		}
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Adapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
		logger:   logger,
	}, nil
}

func (a *Adapter) Navigate(ctx context.Context, url string) error {
	if err := a.page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := a.page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	a.page.WaitIdle(5 * time.Second)
	return nil
}

// ObserveActions lists the interactive elements currently visible on the
// page. Labels come from element text first, aria-label second.
func (a *Adapter) ObserveActions(ctx context.Context) ([]entity.ObservedAction, error) {
	var result []entity.ObservedAction
	seen := make(map[string]bool)
	counter := 0

	add := func(el *rod.Element, typ string) {
		if el == nil || counter >= maxObservedActions {
			return
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			return
		}

		text, _ := el.Text()
		text = strings.TrimSpace(text)
		aria, _ := el.Attribute("aria-label")
		role, _ := el.Attribute("role")

		label := text
		if label == "" {
			label = ptrToString(aria)
		}
		if label == "" {
			return
		}

		selector := el.MustElementX("@").String()
		if seen[selector] {
			return
		}
		seen[selector] = true

		result = append(result, entity.ObservedAction{
			ID:       fmt.Sprintf("act-%04d", counter),
			Type:     typ,
			Label:    label,
			Selector: selector,
			Role:     ptrToString(role),
		})
		counter++
	}

	elements, err := a.page.Elements("button, [role='button'], [aria-label]:not([aria-label=''])")
	if err == nil {
		for _, el := range elements {
			add(el, "button")
		}
	}

	elements, err = a.page.Elements("a")
	if err == nil {
		for _, el := range elements {
			add(el, "link")
		}
	}

	elements, err = a.page.Elements("input[type='submit'], [role='tab']")
	if err == nil {
		for _, el := range elements {
			add(el, "control")
		}
	}

	return result, nil
}

// PerformAction clicks the first visible interactive element whose label
// matches the given text.
func (a *Adapter) PerformAction(ctx context.Context, label string) error {
	pattern := "/" + regexp.QuoteMeta(label) + "/i"

	el, err := a.page.Timeout(a.timeout).ElementR("button, a, [role='button'], [role='tab']", pattern)
	if err != nil {
		return fmt.Errorf("action not found: %s: %w", label, err)
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %s: %w", label, err)
	}

	a.page.WaitIdle(2 * time.Second)
	return nil
}

func (a *Adapter) Fill(ctx context.Context, selector, text string) error {
	el, err := a.page.Timeout(a.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("field not found: %s: %w", selector, err)
	}

	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}

	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}

	return nil
}

func (a *Adapter) PressEnter(ctx context.Context) error {
	el, err := a.page.Timeout(a.timeout).Element("body")
	if err != nil {
		return fmt.Errorf("body not found: %w", err)
	}
	if err := el.Input("\r"); err != nil {
		return fmt.Errorf("failed to press Enter: %w", err)
	}
	a.page.WaitIdle(1 * time.Second)
	return nil
}

// ReadClipboard reads the system clipboard through the page context. The
// clipboard-read permission must be granted first or readText rejects.
func (a *Adapter) ReadClipboard(ctx context.Context) (string, error) {
	err := proto.BrowserGrantPermissions{
		Permissions: []proto.BrowserPermissionType{
			proto.BrowserPermissionTypeClipboardReadWrite,
			proto.BrowserPermissionTypeClipboardSanitizedWrite,
		},
	}.Call(a.browser)
	if err != nil {
		return "", fmt.Errorf("clipboard permission denied: %w", err)
	}

	obj, err := a.page.Eval(`() => navigator.clipboard.readText()`)
	if err != nil {
		return "", fmt.Errorf("clipboard read failed: %w", err)
	}
	return obj.Value.Str(), nil
}

func (a *Adapter) EvalQuery(ctx context.Context, js string) (string, error) {
	obj, err := a.page.Eval(js)
	if err != nil {
		return "", fmt.Errorf("eval failed: %w", err)
	}
	return obj.Value.Str(), nil
}

func (a *Adapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	imgBytes, err := a.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > 1024 {
		img = imaging.Resize(img, 1024, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (a *Adapter) Cookies(ctx context.Context) ([]entity.Cookie, error) {
	cookies, err := a.browser.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("get cookies failed: %w", err)
	}

	out := make([]entity.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, entity.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: string(c.SameSite),
		})
	}
	return out, nil
}

func (a *Adapter) SetCookies(ctx context.Context, cookies []entity.Cookie) error {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  proto.TimeSinceEpoch(c.Expires),
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: proto.NetworkCookieSameSite(c.SameSite),
		})
	}

	if err := a.browser.SetCookies(params); err != nil {
		return fmt.Errorf("set cookies failed: %w", err)
	}
	return nil
}

func (a *Adapter) CurrentURL() string {
	info, err := a.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (a *Adapter) Close() {
	if a.browser != nil {
		_ = a.browser.Close()
	}
	if a.launcher != nil {
		a.launcher.Kill()
		a.launcher.Cleanup()
	}
}

func ptrToString(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
