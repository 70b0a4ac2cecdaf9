package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userreg/internal/client/config"
	"github.com/dmitrijs2005/userreg/internal/client/services"
)

func TestIsLoggedIn(t *testing.T) {
	ta := newTestApp(t)
	assert.False(t, ta.isLoggedIn())
	ta.profile.user = alice()
	assert.True(t, ta.isLoggedIn())
}

func TestSetMode(t *testing.T) {
	ta := newTestApp(t)
	assert.Equal(t, Mode(""), ta.Mode())

	ta.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, ta.Mode())
	ta.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, ta.Mode())
	ta.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, ta.Mode())
}

func TestGetStatus(t *testing.T) {
	ta := newTestApp(t)
	assert.Equal(t, "", ta.getStatus())

	ta.setMode(ModeOffline)
	assert.Equal(t, "(offline)", ta.getStatus())

	ta.profile.user = alice()
	ta.setMode(ModeOnline)
	assert.Equal(t, "(alice online)", ta.getStatus())
}

func TestStatus(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.Status(context.Background()))
	assert.Equal(t, "User: -\nToken expires: -\nMode: -\nStorage: 0 cookies, 0 local keys, 0 session keys\n", ta.output())

	ta.console.out.Reset()
	ta.cache.usage = services.StorageUsage{Cookies: 1, Local: 1}
	ta.profile.user = alice()
	ta.auth.expiry = time.Date(2026, 10, 26, 9, 0, 0, 0, time.UTC)
	ta.setMode(ModeOnline)
	require.NoError(t, ta.Status(context.Background()))
	out := ta.output()
	assert.Contains(t, out, "User: alice\n")
	assert.Contains(t, out, "2026")
	assert.Contains(t, out, "Mode: online\n")
	assert.Contains(t, out, "Storage: 1 cookies, 1 local keys, 0 session keys\n")

	ta.console.out.Reset()
	ta.cache.usageErr = errors.New("disk")
	require.NoError(t, ta.Status(context.Background()))
	assert.Contains(t, ta.output(), "Storage: -\n")
}

func TestCheckOnline(t *testing.T) {
	ta := newTestApp(t)

	ta.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, ta.Mode())

	ta.auth.setPingErr(errors.New("down"))
	ta.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, ta.Mode())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	ta := newTestApp(t)
	ta.auth.setPingErr(errors.New("down"))
	ta.setMode(ModeOnline)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ta.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return ta.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)
	ta.auth.setPingErr(nil)
	require.Eventually(t, func() bool { return ta.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestStartOnlineStatusWatcher_DisabledInterval(t *testing.T) {
	ta := newTestApp(t)
	ta.StartOnlineStatusWatcher(context.Background(), 0)
	assert.Zero(t, ta.auth.pingCalls)
}

func TestRoot_RestoresSessionAndRunsREPL(t *testing.T) {
	printed := capturePrintln(t)

	ta := newTestApp(t, "status", "exit")
	ta.config = &config.Config{OnlineCheckInterval: time.Hour}
	ta.auth.restoreRet = alice()

	ta.Root(context.Background())

	out := ta.output()
	assert.True(t, strings.HasPrefix(out, "Welcome to UserReg"))
	assert.Contains(t, out, "Welcome back, alice!")
	assert.Contains(t, out, "User: alice\n")
	assert.Equal(t, "ureg (alice online)> ", ta.console.prompts[0])
	assert.Equal(t, []string{"Bye!"}, *printed)
}

func TestRoot_RestoreErrorIsNotFatal(t *testing.T) {
	capturePrintln(t)

	ta := newTestApp(t)
	ta.config = &config.Config{}
	ta.auth.restoreErr = errors.New("corrupt db")

	ta.Root(context.Background())
	assert.NotContains(t, ta.output(), "Welcome back")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestClose_ReleasesInReverseOrder(t *testing.T) {
	var order []string
	named := func(name string) io.Closer {
		return closerFunc(func() error { order = append(order, name); return nil })
	}

	a := &App{closers: []io.Closer{named("log"), named("db"), named("console")}}
	a.Close()
	assert.Equal(t, []string{"console", "db", "log"}, order)
	assert.Nil(t, a.closers)
}
