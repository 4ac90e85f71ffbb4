package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/oguzcv/football-league-service/internal/config"
	"github.com/oguzcv/football-league-service/internal/handler"
	"github.com/oguzcv/football-league-service/internal/logger"
	"github.com/oguzcv/football-league-service/internal/repository"
	"github.com/oguzcv/football-league-service/internal/repository/postgres"
	"github.com/oguzcv/football-league-service/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx := context.Background()
	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()

	if err := runMigrations(cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("migrations failed")
	}
	appLogger.Info().Msg("migrations up to date")

	pool := repo.Pool()
	players := postgres.NewPlayerRepository(pool)
	matches := postgres.NewMatchRepository(pool)
	stats := postgres.NewStatsRepository(pool)
	pitches := postgres.NewPitchRepository(pool)
	tx := postgres.NewTxManager(pool)
	pinger := postgres.NewPinger(pool)

	authSvc := service.NewAuthService(players, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute, appLogger)
	playerSvc := service.NewPlayerService(players, matches, appLogger)
	matchSvc := service.NewMatchService(matches, players, stats, tx, appLogger)
	pitchSvc := service.NewPitchService(pitches, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.Register(router, pinger, authSvc, playerSvc, matchSvc, pitchSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		appLogger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal().Err(err).Msg("server exited with error")
	}
	appLogger.Info().Msg("server stopped cleanly")
}

func configPath() string {
	if p := os.Getenv("APP_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

// runMigrations applies pending goose migrations over the stdlib pgx driver.
func runMigrations(cfg *config.Config) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User, cfg.Postgres.Password,
		cfg.Postgres.Host, cfg.Postgres.Port,
		cfg.Postgres.DBName, cfg.Postgres.SSLMode)
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, cfg.Postgres.MigrationsDir)
}
