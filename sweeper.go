package main

import (
	"context"
	"time"
)

// cleanupExpiredSessions removes sessions idle for longer than maxAge and
// returns how many were removed.
func (app *App) cleanupExpiredSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	app.SessionMutex.Lock()
	removed := 0
	for id, ps := range app.Sessions {
		if ps.LastAccessTime.Before(cutoff) {
			delete(app.Sessions, id)
			removed++
		}
	}
	remaining := len(app.Sessions)
	app.SessionMutex.Unlock()

	if removed > 0 {
		logInfo("Session cleanup completed: removed %d idle sessions, %d remaining", removed, remaining)
	}
	return removed
}

// runSessionSweeper calls cleanupExpiredSessions every interval until ctx is done.
func (app *App) runSessionSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logInfo("Session sweeper started (interval %v, max idle %v)", interval, maxAge)
	for {
		select {
		case <-ctx.Done():
			logInfo("Session sweeper stopped")
			return
		case <-ticker.C:
			app.cleanupExpiredSessions(maxAge)
		}
	}
}
