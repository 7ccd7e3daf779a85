package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
	minSessionIDLen   = 10
)

// Route constants
const (
	RouteHome          = "/"
	RouteGameState     = "/game-state"
	RouteSelect        = "/select"
	RouteGuess         = "/guess"
	RouteNext          = "/next"
	RouteToggleHistory = "/history/toggle"
	RouteNewGame       = "/new-game"
	RouteHealthz       = "/healthz"
)

// Page text
const (
	PageTitle   = "Ingoa - Māori Place Name Quiz"
	PageHeading = "Guess the Māori name for:"
)

// Error message constants
const (
	ErrorNoQuestion = "No question is available right now."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
