package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userreg/internal/client/client"
)

func TestLogin_Success(t *testing.T) {
	ta := newTestApp(t, "alice", "Secret123")
	ta.auth.loginRet = alice()

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, "alice", ta.auth.loginUser)
	assert.Equal(t, "Secret123", string(ta.auth.loginPass))
	assert.Equal(t, ModeOnline, ta.Mode())
	out := ta.output()
	assert.Contains(t, out, "Login successful!")
	assert.Contains(t, out, "Username: alice\nEmail: alice@example.org\nGender: female\nNickname: al\n")
	assert.Equal(t, []string{"Username: ", "Password: "}, ta.console.prompts)
}

func TestLogin_ServerMessage(t *testing.T) {
	ta := newTestApp(t, "alice", "wrong")
	ta.auth.loginErr = &client.APIError{StatusCode: 401, Message: "Invalid username or password"}

	require.Error(t, ta.Login(context.Background()))
	assert.Equal(t, "Invalid username or password\n", ta.output())
}

func TestLogin_FallbackMessageAndOffline(t *testing.T) {
	ta := newTestApp(t, "alice", "Secret123")
	ta.auth.loginErr = client.ErrUnavailable

	require.ErrorIs(t, ta.Login(context.Background()), client.ErrUnavailable)
	assert.Equal(t, "Login failed\n", ta.output())
	assert.Equal(t, ModeOffline, ta.Mode())
}

func TestLogin_Validation(t *testing.T) {
	ta := newTestApp(t, "", "")

	require.Error(t, ta.Login(context.Background()))
	assert.Zero(t, ta.auth.loginCalls)
	assert.Contains(t, ta.output(), "username: Username is required")
	assert.Contains(t, ta.output(), "password: Password is required")
}

func TestLogin_InputSeams(t *testing.T) {
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })

	getSimpleText = func(Console, string) (string, error) { return "bob", nil }
	boom := errors.New("no tty")
	getPassword = func(Console, string) ([]byte, error) { return nil, boom }

	ta := newTestApp(t)
	require.ErrorIs(t, ta.Login(context.Background()), boom)
	assert.Zero(t, ta.auth.loginCalls)
}

func TestLogin_PasswordIsWiped(t *testing.T) {
	origGP := getPassword
	t.Cleanup(func() { getPassword = origGP })

	pw := []byte("Secret123")
	getPassword = func(Console, string) ([]byte, error) { return pw, nil }

	ta := newTestApp(t, "alice")
	ta.auth.loginRet = alice()
	require.NoError(t, ta.Login(context.Background()))
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t)
	ta.profile.user = alice()

	require.NoError(t, ta.Logout(context.Background()))
	assert.True(t, ta.auth.logoutCalled)
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "Logged out.\n", ta.output())
}

func TestLogout_ErrorPropagates(t *testing.T) {
	ta := newTestApp(t)
	ta.auth.logoutErr = errors.New("disk full")

	require.Error(t, ta.Logout(context.Background()))
	assert.Equal(t, "Logout failed\n", ta.output())
}
