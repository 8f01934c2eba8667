package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
	"uigen-bridge/internal/infrastructure/logger"
)

type fakeDriver struct {
	closes      int
	navigateErr error
	fillErr     error
	enterErr    error

	setCookies []entity.Cookie
	cookies    []entity.Cookie
	cookiesErr error

	ops []string
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.ops = append(d.ops, "navigate")
	return d.navigateErr
}
func (d *fakeDriver) ObserveActions(ctx context.Context) ([]entity.ObservedAction, error) {
	return nil, nil
}
func (d *fakeDriver) PerformAction(ctx context.Context, label string) error { return nil }
func (d *fakeDriver) Fill(ctx context.Context, selector, text string) error {
	d.ops = append(d.ops, "fill")
	return d.fillErr
}
func (d *fakeDriver) PressEnter(ctx context.Context) error {
	d.ops = append(d.ops, "enter")
	return d.enterErr
}
func (d *fakeDriver) ReadClipboard(ctx context.Context) (string, error)      { return "", nil }
func (d *fakeDriver) EvalQuery(ctx context.Context, js string) (string, error) { return "", nil }
func (d *fakeDriver) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return nil, errors.New("no display")
}
func (d *fakeDriver) Cookies(ctx context.Context) ([]entity.Cookie, error) {
	d.ops = append(d.ops, "cookies")
	return d.cookies, d.cookiesErr
}
func (d *fakeDriver) SetCookies(ctx context.Context, cookies []entity.Cookie) error {
	d.setCookies = cookies
	return nil
}
func (d *fakeDriver) CurrentURL() string { return "https://example.test" }
func (d *fakeDriver) Close()             { d.closes++ }

type fakeFactory struct {
	driver *fakeDriver
	err    error
}

func (f *fakeFactory) Acquire(ctx context.Context) (output.PageDriver, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.driver, nil
}

type fakeStore struct {
	loaded  *entity.SessionState
	loadErr error

	saved   *entity.SessionState
	saveErr error
	saves   int
}

func (s *fakeStore) Load() (*entity.SessionState, error) { return s.loaded, s.loadErr }
func (s *fakeStore) Save(state *entity.SessionState) error {
	s.saves++
	s.saved = state
	return s.saveErr
}

type stubAuth struct{ err error }

func (a *stubAuth) Run(ctx context.Context) error { return a.err }

type stubAwaiter struct{ err error }

func (a *stubAwaiter) Await(ctx context.Context) error { return a.err }

type stubExtractor struct {
	result *entity.GenerationResult
	err    error
}

func (e *stubExtractor) Extract(ctx context.Context) (*entity.GenerationResult, error) {
	return e.result, e.err
}

type deps struct {
	driver    *fakeDriver
	factory   *fakeFactory
	store     *fakeStore
	auth      *stubAuth
	awaiter   *stubAwaiter
	extractor *stubExtractor
}

func newUseCase(d *deps) *UseCase {
	if d.driver == nil {
		d.driver = &fakeDriver{}
	}
	if d.factory == nil {
		d.factory = &fakeFactory{driver: d.driver}
	}
	if d.store == nil {
		d.store = &fakeStore{}
	}
	if d.auth == nil {
		d.auth = &stubAuth{}
	}
	if d.awaiter == nil {
		d.awaiter = &stubAwaiter{}
	}
	if d.extractor == nil {
		result := entity.NewGenerationResult()
		result.Add("login.tsx", "export default function Login() {...}")
		d.extractor = &stubExtractor{result: result}
	}

	return New(
		d.factory,
		d.store,
		logger.NewNop(),
		Config{TargetURL: "https://example.test", PromptSelector: "textarea"},
		func(output.PageDriver) AuthRunner { return d.auth },
		func(output.PageDriver) Awaiter { return d.awaiter },
		func(output.PageDriver) FileExtractor { return d.extractor },
	)
}

func req() entity.GenerationRequest {
	return entity.GenerationRequest{ID: "req-1", Prompt: "Create a modern login form with email and password fields"}
}

func TestExecute_HappyPath(t *testing.T) {
	d := &deps{driver: &fakeDriver{cookies: []entity.Cookie{{Name: "sid", Value: "abc"}}}}
	uc := newUseCase(d)

	result, err := uc.Execute(context.Background(), req())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"login.tsx": "export default function Login() {...}"}, result.FileMap())
	assert.Equal(t, 1, d.driver.closes)
	require.NotNil(t, d.store.saved)
	assert.Equal(t, "sid", d.store.saved.Cookies[0].Name)
}

func TestExecute_RestoresSavedSession(t *testing.T) {
	d := &deps{
		driver: &fakeDriver{},
		store:  &fakeStore{loaded: &entity.SessionState{Cookies: []entity.Cookie{{Name: "sid", Value: "old"}}}},
	}
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), req())

	require.NoError(t, err)
	require.Len(t, d.driver.setCookies, 1)
	assert.Equal(t, "old", d.driver.setCookies[0].Value)
}

func TestExecute_ReleaseOnEveryFailurePath(t *testing.T) {
	cases := map[string]func(*deps){
		"authentication": func(d *deps) { d.auth = &stubAuth{err: &entity.AuthenticationError{Reason: "nope"}} },
		"submission":     func(d *deps) { d.driver = &fakeDriver{fillErr: errors.New("input gone")} },
		"polling":        func(d *deps) { d.awaiter = &stubAwaiter{err: &entity.GenerationFailedError{Reason: "err"}} },
		"extraction":     func(d *deps) { d.extractor = &stubExtractor{err: &entity.ExtractionError{Attempts: 5}} },
	}

	for name, inject := range cases {
		t.Run(name, func(t *testing.T) {
			d := &deps{}
			inject(d)
			uc := newUseCase(d)

			_, err := uc.Execute(context.Background(), req())

			require.Error(t, err)
			assert.Equal(t, 1, d.driver.closes, "driver released exactly once")
			assert.Equal(t, 0, d.store.saves, "no session persisted on failure")
		})
	}
}

func TestExecute_AuthFailureSurfacedUnchanged(t *testing.T) {
	d := &deps{auth: &stubAuth{err: &entity.AuthenticationError{Reason: "post-login verification failed"}}}
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), req())

	var authErr *entity.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "post-login verification failed", authErr.Reason)
}

func TestExecute_TimeoutSurfacedDistinctly(t *testing.T) {
	d := &deps{awaiter: &stubAwaiter{err: &entity.GenerationTimeoutError{}}}
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), req())

	var timeout *entity.GenerationTimeoutError
	assert.ErrorAs(t, err, &timeout)
}

func TestExecute_SessionSaveFailureIsNonFatal(t *testing.T) {
	d := &deps{store: &fakeStore{saveErr: errors.New("disk full")}}
	uc := newUseCase(d)

	result, err := uc.Execute(context.Background(), req())

	require.NoError(t, err)
	assert.True(t, result.HasContent())
}

func TestExecute_SaveHappensAfterExtraction(t *testing.T) {
	d := &deps{driver: &fakeDriver{cookies: []entity.Cookie{{Name: "sid"}}}}
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), req())

	require.NoError(t, err)
	// Cookie read for persistence is the last driver operation.
	require.NotEmpty(t, d.driver.ops)
	assert.Equal(t, "cookies", d.driver.ops[len(d.driver.ops)-1])
}

func TestExecute_AcquireFailure(t *testing.T) {
	d := &deps{factory: &fakeFactory{err: errors.New("backend unreachable")}, driver: &fakeDriver{}}
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), req())

	var driverErr *entity.DriverError
	require.ErrorAs(t, err, &driverErr)
	assert.Equal(t, 0, d.driver.closes)
}
