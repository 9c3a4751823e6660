package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/journal-backend/internal/config"
	"github.com/AnshRaj112/journal-backend/internal/database"
	"github.com/AnshRaj112/journal-backend/internal/logger"
	"github.com/AnshRaj112/journal-backend/internal/routes"
	"github.com/AnshRaj112/journal-backend/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		zerolog.New(os.Stderr).Info().Msg("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New("journal-backend", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer db.Close()

	if err := database.InitPostgresTables(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tables")
	}

	tokens, err := services.NewTokenService([]byte(cfg.JWTSecret), services.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token service")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "journal"),
	)

	router := routes.SetupRoutes(routes.Deps{
		Log:      log,
		Accounts: services.NewAccountService(database.NewUserRepository(db)),
		Tokens:   tokens,
		Journal:  database.NewJournalRepository(db),
		Contacts: database.NewContactRepository(db),
		DBNow: func(ctx context.Context) (time.Time, error) {
			return database.Now(ctx, db)
		},
		Registry:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Msg("journal backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
