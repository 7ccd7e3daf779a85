package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ingoa/internal/quiz"
)

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// renderQuiz writes the full page, or just the quiz fragment for HTMX requests.
func (app *App) renderQuiz(c *gin.Context, snap quiz.Snapshot, errMsg string) {
	data := gin.H{
		"title":   PageTitle,
		"heading": PageHeading,
		"game":    snap,
		"place":   snap.Question.CurrentPlace,
		"error":   errMsg,
	}
	if isHTMX(c) {
		c.HTML(http.StatusOK, "game-content", data)
		return
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// respondAfterAction renders the fragment for HTMX and redirects plain form posts home.
func (app *App) respondAfterAction(c *gin.Context, snap quiz.Snapshot, err error) {
	if err != nil {
		requestLogger(c.Request.Context()).Error().Err(err).Msg("Quiz action failed")
		if !isHTMX(c) {
			c.HTML(http.StatusInternalServerError, "index.html", gin.H{"title": PageTitle, "heading": PageHeading, "error": ErrorNoQuestion})
			return
		}
		app.renderQuiz(c, snap, ErrorNoQuestion)
		return
	}
	if isHTMX(c) {
		app.renderQuiz(c, snap, "")
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// homeHandler renders the quiz page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	snap, err := app.withQuiz(c.Request.Context(), sessionID, nil)
	if err != nil {
		requestLogger(c.Request.Context()).Error().Err(err).Msg("Failed to load quiz")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"title": PageTitle, "heading": PageHeading, "error": ErrorNoQuestion})
		return
	}
	app.renderQuiz(c, snap, "")
}

// gameStateHandler renders the current quiz as an HTML fragment.
func (app *App) gameStateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	snap, err := app.withQuiz(c.Request.Context(), sessionID, nil)
	if err != nil {
		requestLogger(c.Request.Context()).Error().Err(err).Msg("Failed to load quiz")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "game-content", gin.H{
		"game":  snap,
		"place": snap.Question.CurrentPlace,
	})
}

// selectHandler records the name currently chosen in the dropdown.
func (app *App) selectHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	candidate := normalizeGuess(c.PostForm("guess"))
	_, err := app.withQuiz(c.Request.Context(), sessionID, func(q *quiz.Session) error {
		q.Select(candidate)
		return nil
	})
	if err != nil {
		requestLogger(c.Request.Context()).Error().Err(err).Msg("Failed to record selection")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// guessHandler submits the selected name for the current question.
func (app *App) guessHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	candidate := normalizeGuess(c.PostForm("guess"))

	snap, err := app.withQuiz(ctx, sessionID, func(q *quiz.Session) error {
		if q.IsAnswered() {
			requestLogger(ctx).Warn().Str("session", sessionID).Msg("Session attempted guess on answered question")
			return nil
		}
		q.SubmitGuess(candidate)
		if candidate != "" {
			requestLogger(ctx).Info().
				Str("session", sessionID).
				Str("guess", candidate).
				Str("feedback", string(q.Feedback())).
				Msg("Guess submitted")
		}
		return nil
	})
	app.respondAfterAction(c, snap, err)
}

// nextHandler archives the finished question and moves to a new one.
func (app *App) nextHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	snap, err := app.withQuiz(c.Request.Context(), sessionID, func(q *quiz.Session) error {
		return q.Advance()
	})
	app.respondAfterAction(c, snap, err)
}

// toggleHistoryHandler shows or hides the history panel.
func (app *App) toggleHistoryHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	snap, err := app.withQuiz(c.Request.Context(), sessionID, func(q *quiz.Session) error {
		q.ToggleHistory()
		return nil
	})
	app.respondAfterAction(c, snap, err)
}

// newGameHandler discards the session's quiz and history, optionally
// issuing a new session ID.
func (app *App) newGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	logInfo("Creating new game for session: %s", sessionID)

	if c.Query("reset") == "1" {
		app.dropSession(sessionID)
		app.clearSessionCookie(c)
		sessionID = app.setSessionCookie(c)
		logInfo("Created new session ID: %s", sessionID)
	}

	if err := app.resetQuiz(ctx, sessionID); err != nil {
		app.respondAfterAction(c, quiz.Snapshot{}, err)
		return
	}
	if isHTMX(c) {
		snap, err := app.withQuiz(ctx, sessionID, nil)
		app.respondAfterAction(c, snap, err)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.Lock()
	active := len(app.Sessions)
	app.SessionMutex.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             app.Config.Env,
		"places_loaded":   len(app.Places),
		"active_sessions": active,
		"uptime":          formatUptime(time.Since(app.StartTime)),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// normalizeGuess trims surrounding whitespace. Case is kept because place
// names are matched exactly.
func normalizeGuess(input string) string {
	return strings.TrimSpace(input)
}
