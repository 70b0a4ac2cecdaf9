package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/client/services"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

// ---- console ----

// scriptedConsole answers ReadLine and ReadPassword from a fixed script and
// returns io.EOF once it runs out.
type scriptedConsole struct {
	lines   []string
	prompts []string
	history []string
	out     bytes.Buffer
}

func script(lines ...string) *scriptedConsole {
	return &scriptedConsole{lines: lines}
}

func (c *scriptedConsole) next(prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.lines) == 0 {
		return "", io.EOF
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	if line == "^C" {
		return "", errCancelled
	}
	return line, nil
}

func (c *scriptedConsole) ReadLine(prompt string) (string, error) { return c.next(prompt) }
func (c *scriptedConsole) ReadPassword(prompt string) ([]byte, error) {
	line, err := c.next(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}
func (c *scriptedConsole) AddHistory(line string) { c.history = append(c.history, line) }
func (c *scriptedConsole) Stdout() io.Writer      { return &c.out }
func (c *scriptedConsole) Close() error           { return nil }

// ---- services ----

type fakeAuth struct {
	mu sync.Mutex

	profile *fakeProfile

	regReq models.RegisterRequest
	regErr error

	loginUser  string
	loginPass  []byte
	loginCalls int
	loginRet   *models.User
	loginErr   error

	logoutCalled bool
	logoutErr    error

	restoreRet *models.User
	restoreErr error

	expiry time.Time

	pingErr   error
	pingCalls int
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	f.regReq = req
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: "1", Username: req.Username, Email: req.Email}, nil
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (*models.User, error) {
	f.loginCalls++
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.profile != nil {
		f.profile.user = f.loginRet
	}
	return f.loginRet, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.profile != nil {
		f.profile.user = nil
	}
	return f.logoutErr
}

func (f *fakeAuth) Restore(context.Context) (*models.User, error) {
	if f.profile != nil && f.restoreRet != nil {
		f.profile.user = f.restoreRet
	}
	return f.restoreRet, f.restoreErr
}

func (f *fakeAuth) Expiry() time.Time { return f.expiry }

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingCalls++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeProfile struct {
	user *models.User

	updateReq   models.UpdateProfileRequest
	updateCalls int
	updateErr   error

	refreshRet *models.User
	refreshErr error

	deleteCalls int
	deleteErr   error
}

func (f *fakeProfile) Current() *models.User { return f.user }

func (f *fakeProfile) Refresh(context.Context) (*models.User, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.user = f.refreshRet
	return f.refreshRet, nil
}

func (f *fakeProfile) Update(_ context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	f.updateCalls++
	f.updateReq = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u := *f.user
	u.Gender, u.Birthdate, u.Favorites, u.Nickname, u.AboutMe = req.Gender, req.Birthdate, req.Favorites, req.Nickname, req.AboutMe
	f.user = &u
	return &u, nil
}

func (f *fakeProfile) Delete(context.Context) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.user = nil
	return nil
}

type fakeCache struct {
	userCalls    int
	browserCalls int
	err          error
	usage        services.StorageUsage
	usageErr     error
}

func (f *fakeCache) Usage(context.Context) (services.StorageUsage, error) {
	return f.usage, f.usageErr
}

func (f *fakeCache) ClearAllUserCache(context.Context) error {
	f.userCalls++
	return f.err
}

func (f *fakeCache) ClearBrowserCache(context.Context) error {
	f.browserCalls++
	return f.err
}

type fakeDraft struct {
	draft   *models.RegistrationStep1
	saved   []models.RegistrationStep1
	dropped int
}

func (f *fakeDraft) SaveDraft(_ context.Context, s models.RegistrationStep1) error {
	f.saved = append(f.saved, s)
	s.Password = ""
	f.draft = &s
	return nil
}

func (f *fakeDraft) LoadDraft(context.Context) (*models.RegistrationStep1, error) {
	return f.draft, nil
}

func (f *fakeDraft) DropDraft(context.Context) error {
	f.dropped++
	f.draft = nil
	return nil
}

// ---- app ----

type testApp struct {
	*App
	console *scriptedConsole
	auth    *fakeAuth
	profile *fakeProfile
	cache   *fakeCache
	draft   *fakeDraft
}

func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	console := script(lines...)
	profile := &fakeProfile{}
	auth := &fakeAuth{profile: profile}
	cache := &fakeCache{}
	draft := &fakeDraft{}

	app := &App{
		authService:    auth,
		profileService: profile,
		cacheService:   cache,
		draftService:   draft,
		logger:         logging.Discard(),
		console:        console,
		out:            &console.out,
	}
	return &testApp{App: app, console: console, auth: auth, profile: profile, cache: cache, draft: draft}
}

func (ta *testApp) output() string {
	return ta.console.out.String()
}

func alice() *models.User {
	return &models.User{ID: "1", Username: "alice", Email: "alice@example.org", Gender: "female", Nickname: "al"}
}
