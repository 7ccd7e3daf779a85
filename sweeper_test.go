package main

import (
	"context"
	"testing"
	"time"
)

func TestCleanupExpiredSessions(t *testing.T) {
	app := testApp()
	ctx := context.Background()
	for _, id := range []string{"active-session", "expired-session-1", "expired-session-2"} {
		if _, err := app.withQuiz(ctx, id, nil); err != nil {
			t.Fatalf("withQuiz(%s) failed: %v", id, err)
		}
	}
	app.Sessions["expired-session-1"].LastAccessTime = time.Now().Add(-3 * time.Hour)
	app.Sessions["expired-session-2"].LastAccessTime = time.Now().Add(-5 * time.Hour)

	if removed := app.cleanupExpiredSessions(2 * time.Hour); removed != 2 {
		t.Errorf("cleanupExpiredSessions removed %d, want 2", removed)
	}
	if _, ok := app.Sessions["active-session"]; !ok {
		t.Error("active session should remain")
	}
	if len(app.Sessions) != 1 {
		t.Errorf("expected 1 session left, got %d", len(app.Sessions))
	}
}

func TestRunSessionSweeper_StopsOnCancel(t *testing.T) {
	app := testApp()
	if _, err := app.withQuiz(context.Background(), "expired-session", nil); err != nil {
		t.Fatalf("withQuiz failed: %v", err)
	}
	app.Sessions["expired-session"].LastAccessTime = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.runSessionSweeper(ctx, 5*time.Millisecond, time.Minute)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		app.SessionMutex.Lock()
		n := len(app.Sessions)
		app.SessionMutex.Unlock()
		if n == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("sweeper did not remove the expired session")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
