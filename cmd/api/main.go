package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/jwt-auth-api/backend/internal/api"
	"github.com/jwt-auth-api/backend/internal/core/ports"
	"github.com/jwt-auth-api/backend/internal/core/service"
	"github.com/jwt-auth-api/backend/internal/infrastructure/db/memory"
	"github.com/jwt-auth-api/backend/internal/infrastructure/db/mongo"
	"github.com/jwt-auth-api/backend/internal/infrastructure/db/redis"
	"github.com/jwt-auth-api/backend/internal/infrastructure/security"
	"github.com/jwt-auth-api/backend/internal/pkg/config"
	"github.com/jwt-auth-api/backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title JWT auth API
// @version 1.0
// @description User registration, login and admin user management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "jwt-auth-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		store   ports.UserStore
		mongoDB *gomongo.Database
		redisDB *goredis.Client
	)

	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()
		repo := mongo.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		store, mongoDB = repo, db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo user store")
	default:
		store = memory.NewUserStore()
		log.Warn().Msg("using in-memory user store, data is lost on restart")
	}

	hasher := security.NewBcryptHasher(cfg.JWT.BcryptCost)
	tokens := security.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	var opts []service.AuthOption
	if cfg.Throttle.Enabled {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		redisDB = client
		opts = append(opts, service.WithLoginThrottle(
			redis.NewLoginThrottle(client, cfg.Throttle.MaxAttempts, cfg.Throttle.Lockout),
		))
	}

	authSvc, err := service.NewAuthService(store, hasher, tokens, logger.Component("auth"), opts...)
	if err != nil {
		return err
	}
	adminSvc := service.NewUserAdminService(store, service.NewAccessPolicy(), logger.Component("users"))

	if cfg.Admin.Email != "" {
		created, err := service.SeedAdmin(ctx, store, hasher, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return err
		}
		log.Info().Str("email", cfg.Admin.Email).Bool("created", created).Msg("admin account checked")
	}

	e := api.NewRouter(api.Deps{
		Auth:   authSvc,
		Admin:  adminSvc,
		Tokens: tokens,
		Logger: logger.Component("http"),
		Mongo:  mongoDB,
		Redis:  redisDB,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
