package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/email"
	"wedding-rsvp/internal/handler"
	"wedding-rsvp/internal/ratelimit"
	"wedding-rsvp/internal/storage"
)

const (
	rateLimitMax    = 5
	rateLimitPeriod = time.Hour
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.LoadConfig()
	logger.Info().Str("env", cfg.Env).Msg("starting wedding RSVP server")

	// The backend is picked once here and injected; it is never re-checked
	// per request.
	var store storage.RSVPStore
	if cfg.DatabaseConfigured() {
		pg, err := storage.NewPostgresStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pg.ClosePool()
		store = pg
		logger.Info().Msg("using postgres record store")
	} else {
		fileStore, err := storage.NewFileStore(cfg.RSVPDataFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize file storage")
		}
		store = fileStore
		logger.Info().Str("file", cfg.RSVPDataFile).Msg("using local file record store (database not configured)")
	}

	notifier := email.NewNotifier(
		cfg.SendGridAPIKey,
		cfg.NotificationEmail,
		cfg.NotifyTo,
		logger.With().Str("component", "email").Logger(),
	)
	limiter := ratelimit.NewLimiter(rateLimitMax, rateLimitPeriod)

	rsvpHandler := handler.NewRSVPHandler(store, limiter, notifier, cfg.IsDevelopment(), logger.With().Str("component", "rsvp").Logger())
	contentHandler := handler.NewSiteContentHandler(cfg.SiteContentFile, cfg.IsDevelopment(), logger.With().Str("component", "site-content").Logger())

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/rsvp", rsvpHandler.Submit)
		apiGroup.GET("/rsvp", rsvpHandler.List)
		apiGroup.GET("/site-config", contentHandler.Get)
		apiGroup.POST("/site-config", contentHandler.Update)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	sig := <-stopChan

	logger.Info().Str("signal", sig.String()).Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down cleanly")
		return
	}
	logger.Info().Msg("server stopped")
}
