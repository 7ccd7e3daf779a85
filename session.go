package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < minSessionIDLen {
		sessionID = app.setSessionCookie(c)
		requestLogger(c.Request.Context()).Info().Str("session", sessionID).Msg("Created new session")
	}
	return sessionID
}

// setSessionCookie issues a fresh session ID cookie and returns the ID.
func (app *App) setSessionCookie(c *gin.Context) string {
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.Config.CookieMaxAge.Seconds()), "/", "", app.Config.IsProduction(), true)
	return sessionID
}

// clearSessionCookie expires the session cookie in the browser.
func (app *App) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", app.Config.IsProduction(), true)
}

// playerSessionLocked returns the session for sessionID, starting a quiz if
// there is none. SessionMutex must be held.
func (app *App) playerSessionLocked(ctx context.Context, sessionID string) (*PlayerSession, error) {
	if ps, ok := app.Sessions[sessionID]; ok {
		ps.LastAccessTime = time.Now()
		return ps, nil
	}
	requestLogger(ctx).Info().Str("session", sessionID).Msg("Creating new quiz for session")
	return app.createNewQuizLocked(ctx, sessionID)
}

// dropSession forgets the quiz for sessionID.
func (app *App) dropSession(sessionID string) {
	app.SessionMutex.Lock()
	delete(app.Sessions, sessionID)
	app.SessionMutex.Unlock()
	logInfo("Cleared old session data for: %s", sessionID)
}
