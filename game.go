package main

import (
	"context"
	"time"

	"ingoa/internal/quiz"
)

// createNewQuizLocked starts a fresh quiz for sessionID and stores it.
// SessionMutex must be held.
func (app *App) createNewQuizLocked(ctx context.Context, sessionID string) (*PlayerSession, error) {
	var opts []quiz.Option
	if app.Chooser != nil {
		opts = append(opts, quiz.WithChooser(app.Chooser))
	}
	q, err := quiz.New(app.Places, opts...)
	if err != nil {
		requestLogger(ctx).Error().Err(err).Str("session", sessionID).Msg("Failed to start quiz")
		return nil, err
	}
	if place := q.CurrentPlace(); place != nil {
		requestLogger(ctx).Info().Str("session", sessionID).Str("placename", place.Placename).Msg("New quiz created")
	}
	ps := &PlayerSession{Quiz: q, LastAccessTime: time.Now()}
	app.Sessions[sessionID] = ps
	return ps, nil
}

// withQuiz runs fn against the session's quiz while holding SessionMutex and
// returns a snapshot taken after fn.
func (app *App) withQuiz(ctx context.Context, sessionID string, fn func(*quiz.Session) error) (quiz.Snapshot, error) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	ps, err := app.playerSessionLocked(ctx, sessionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if fn != nil {
		if err := fn(ps.Quiz); err != nil {
			return ps.Quiz.Snapshot(), err
		}
	}
	ps.LastAccessTime = time.Now()
	return ps.Quiz.Snapshot(), nil
}

// resetQuiz discards any quiz for sessionID and starts a new one.
func (app *App) resetQuiz(ctx context.Context, sessionID string) error {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	delete(app.Sessions, sessionID)
	_, err := app.createNewQuizLocked(ctx, sessionID)
	return err
}
