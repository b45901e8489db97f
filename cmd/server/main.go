package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fupdash/backend/internal/clock"
	"github.com/fupdash/backend/internal/config"
	"github.com/fupdash/backend/internal/db"
	httpapi "github.com/fupdash/backend/internal/http"
	"github.com/fupdash/backend/internal/metrics"
	"github.com/fupdash/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "fup-backend").Logger()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid timezone")
	}

	ctx := context.Background()
	var store db.DatasetStore
	if cfg.DatabaseURL == "" {
		store = db.NewMemoryStore(cfg.DatasetTTL)
		logger.Info().Dur("ttl", cfg.DatasetTTL).Msg("using in-memory dataset store")
	} else {
		pg, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		store = pg
	}

	m := metrics.New()
	reports := &service.ReportService{
		Store:   store,
		Clock:   clock.RealClock{Location: loc},
		Logger:  logger,
		Metrics: m,
		Sheet:   cfg.SheetName,
	}

	router := httpapi.Router(cfg, reports, m, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("timezone", loc.String()).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
