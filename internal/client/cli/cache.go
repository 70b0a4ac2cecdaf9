package cli

import "context"

// ClearCache forgets everything stored for the user and ends the session.
func (a *App) ClearCache(ctx context.Context) error {
	if err := a.cacheService.ClearAllUserCache(ctx); err != nil {
		a.logger.Error(ctx, "clear cache failed", "error", err)
		a.println("Failed to clear cache")
		return err
	}
	a.println("Cache cleared successfully!")
	return nil
}

// Wipe empties every cookie and both storages after confirmation.
func (a *App) Wipe(ctx context.Context) error {
	confirmed, err := GetConfirm(a.console, "Remove all cookies and local data?")
	if err != nil || !confirmed {
		return err
	}
	if err := a.cacheService.ClearBrowserCache(ctx); err != nil {
		a.logger.Error(ctx, "wipe failed", "error", err)
		a.println("Failed to clear browser cache")
		return err
	}
	a.println("Browser cache cleared successfully")
	return nil
}
