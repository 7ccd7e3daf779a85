package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ingoa/internal/config"
	"ingoa/internal/quiz"
)

type contextKey string

// App holds the loaded dataset and every player's quiz session.
type App struct {
	Config       *config.Config
	Places       []quiz.PlaceRecord
	Sessions     map[string]*PlayerSession
	SessionMutex sync.Mutex // guards Sessions and every quiz.Session in it
	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	StartTime    time.Time
	Chooser      quiz.Chooser // nil picks questions with crypto/rand
}

// PlayerSession is a quiz session tied to a browser cookie.
type PlayerSession struct {
	Quiz           *quiz.Session
	LastAccessTime time.Time
}

// NewApp builds an App serving the given places.
func NewApp(cfg *config.Config, places []quiz.PlaceRecord) *App {
	return &App{
		Config:     cfg,
		Places:     places,
		Sessions:   make(map[string]*PlayerSession),
		LimiterMap: make(map[string]*rate.Limiter),
		StartTime:  time.Now(),
	}
}
