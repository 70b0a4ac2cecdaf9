package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userreg/internal/common"
)

// Status prints the session user, when its token expires, the connectivity
// mode and how much local storage is in use.
func (a *App) Status(ctx context.Context) error {
	username := ""
	if u := a.profileService.Current(); u != nil {
		username = u.Username
	}
	expires := ""
	if exp := a.authService.Expiry(); !exp.IsZero() {
		expires = exp.Local().Format(time.RFC1123)
	}

	a.printf("User: %s\n", common.ValueOrDash(username))
	a.printf("Token expires: %s\n", common.ValueOrDash(expires))
	a.printf("Mode: %s\n", common.ValueOrDash(string(a.Mode())))

	usage, err := a.cacheService.Usage(ctx)
	if err != nil {
		a.logger.Warn(ctx, "storage usage unavailable", "error", err)
		a.println("Storage: -")
		return nil
	}
	a.printf("Storage: %d cookies, %d local keys, %d session keys\n", usage.Cookies, usage.Local, usage.Session)
	return nil
}
