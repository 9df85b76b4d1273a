package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/isdelr/interview-vault-be/internal/api"
	"github.com/isdelr/interview-vault-be/internal/auth"
	"github.com/isdelr/interview-vault-be/internal/config"
	"github.com/isdelr/interview-vault-be/internal/database"
	"github.com/isdelr/interview-vault-be/internal/logger"
	"github.com/isdelr/interview-vault-be/internal/services"
	"github.com/isdelr/interview-vault-be/internal/store"
	"github.com/isdelr/interview-vault-be/internal/store/mongostore"
	"github.com/isdelr/interview-vault-be/internal/store/sqlstore"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())
	if cfg.UsesInsecureSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up store
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	// Set up services
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(st.Users(), st.Roles(), jwtManager, cfg.BcryptCost)
	questionService := services.NewQuestionService(st.Questions())
	categoryService := services.NewCategoryService(st.Categories())

	// Set up router
	router := api.NewRouter(api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		SecureCookies:  cfg.IsProduction(),
	}, jwtManager, api.Services{
		Auth:       authService,
		Questions:  questionService,
		Categories: categoryService,
		Store:      st,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Int("port", cfg.ServerPort).Str("driver", cfg.StoreDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return
	}
	log.Info().Msg("Server exiting")
}

// openStore connects to the configured backend and applies its migrations.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := database.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := database.MigrateMongo(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to apply mongo migrations: %w", err)
		}
		return mongostore.New(client, db), nil
	default:
		if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply database migrations: %w", err)
		}
		return sqlstore.New(db), nil
	}
}
