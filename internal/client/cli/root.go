package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt status: "(alice online)", "(offline)" or ""
// before the first connectivity check.
func (a *App) getStatus() string {
	s := ""
	if u := a.profileService.Current(); u != nil {
		s = u.Username
	}
	if m := a.Mode(); m != "" {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the previous session, starts the connectivity watcher and
// runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to UserReg (type 'help' for commands)")

	user, err := a.authService.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "session restore failed", "error", err)
	} else if user != nil {
		a.printf("Welcome back, %s!\n", user.Username)
	}

	a.checkOnline(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.console)
}
