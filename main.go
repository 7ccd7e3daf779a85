package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"ingoa/internal/config"
	"ingoa/internal/places"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		setupLogger("info", false, os.Stderr)
		logFatal("Failed to load config: %v", err)
	}
	setupLogger(cfg.LogLevel, cfg.IsProduction(), os.Stderr)
	logInfo("Starting Ingoa in %s mode", cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	records, err := places.Load(cfg.PlacesPath)
	if err != nil {
		logFatal("Failed to load places: %v", err)
	}
	logInfo("Loaded %d places from %s", len(records), cfg.PlacesPath)

	app := NewApp(cfg, records)

	templatesDir, staticDir := "templates", "static"
	if cfg.IsProduction() && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		templatesDir, staticDir = "dist/templates", "dist/static"
	} else {
		logInfo("Serving development assets from source directories")
	}

	router := app.setupRouter(templatesDir+"/*.html", staticDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go app.runSessionSweeper(ctx, cfg.CleanupInterval, cfg.SessionTimeout)

	app.startServer(ctx, router)
}

// setupRouter installs middleware and registers every route.
func (app *App) setupRouter(templatesGlob, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), accessLogMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	router.Use(app.cacheHeadersMiddleware())

	router.SetFuncMap(template.FuncMap{
		"join": strings.Join,
	})
	router.LoadHTMLGlob(templatesGlob)
	if staticDir != "" {
		router.Static("/static", staticDir)
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteNewGame, app.newGameHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	limited := router.Group("/", app.rateLimitMiddleware())
	limited.POST(RouteNewGame, app.newGameHandler)
	limited.POST(RouteSelect, app.selectHandler)
	limited.POST(RouteGuess, app.guessHandler)
	limited.POST(RouteNext, app.nextHandler)
	limited.POST(RouteToggleHistory, app.toggleHistoryHandler)

	return router
}

// accessLogMiddleware logs one line per request through the request logger.
func accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		requestLogger(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// startServer serves until ctx is cancelled, then shuts down gracefully.
func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Config.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
