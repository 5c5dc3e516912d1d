package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/healthease-api/internal/config"
	"github.com/harentsoaR/healthease-api/internal/handlers"
	"github.com/harentsoaR/healthease-api/internal/logger"
	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/services"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	zlog := logger.GetLogger()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal().Err(err).Msg("Server stopped")
	}
}

func run(cfg *config.Config, zlog zerolog.Logger) error {
	ctx := context.Background()

	// --- Database Connection ---
	var db *mongo.Database
	if cfg.NeedsMongo() {
		client, err := connectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				zlog.Warn().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}()
		db = client.Database(cfg.Mongo.Database)
		zlog.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")
	}

	// --- Session Flags ---
	flagStore, closeFlags, err := newFlagStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeFlags()
	sessions := session.NewManager(flagStore, cfg.Session.Prefix, zlog)
	zlog.Info().Str("backend", cfg.Session.Backend).Msg("Session store ready")

	// --- Collections ---
	repos, err := newRepositories(ctx, cfg, db, zlog)
	if err != nil {
		return err
	}

	// --- Initialize Services ---
	notificationSvc := services.NewNotificationService(smsSender(cfg), emailSender(cfg), zlog)
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	h := handlers.NewHandler(repos, sessions, tokens, notificationSvc, zlog, cfg.Auth.AdminKeyHash)
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	// --- Gin Router ---
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SessionMiddleware(tokens, sessions, zlog))
	h.RegisterRoutes(r)

	err = serve(r, cfg.Port, zlog)
	notificationSvc.Wait()
	return err
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

func newFlagStore(ctx context.Context, cfg *config.Config, db *mongo.Database) (session.FlagStore, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect to Redis at %s: %w", cfg.Redis.Address, err)
		}
		return session.NewRedisStore(rdb, cfg.Auth.TokenTTL), func() { _ = rdb.Close() }, nil
	case config.BackendMongo:
		return session.NewMongoStore(db), func() {}, nil
	default:
		return session.NewMemoryStore(), func() {}, nil
	}
}

func newRepositories(ctx context.Context, cfg *config.Config, db *mongo.Database, zlog zerolog.Logger) (*store.Repositories, error) {
	data := store.MockData(time.Now())
	if cfg.Data.Backend != config.BackendMongo {
		return store.NewMemoryRepositories(data), nil
	}

	if err := store.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	repos := store.NewMongoRepositories(db)
	counts, err := store.Seed(ctx, repos, data)
	if err != nil {
		return nil, err
	}
	for name, n := range counts {
		if n > 0 {
			zlog.Info().Str("collection", name).Int("records", n).Msg("Seeded collection")
		}
	}
	return repos, nil
}

func smsSender(cfg *config.Config) services.Sender {
	if cfg.Notifications.TextbeltKey == "" {
		return nil
	}
	return services.NewTextbeltSender(cfg.Notifications.TextbeltURL, cfg.Notifications.TextbeltKey)
}

func emailSender(cfg *config.Config) services.Sender {
	n := cfg.Notifications
	if n.SMTPHost == "" {
		return nil
	}
	return services.NewSMTPSender(n.SMTPHost, n.SMTPPort, n.SMTPUsername, n.SMTPPassword, n.EmailFrom)
}

func serve(handler http.Handler, port string, zlog zerolog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		zlog.Info().Str("port", port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server: %w", err)
	case <-sigChan:
		zlog.Info().Msg("Received shutdown signal, shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	zlog.Info().Msg("Server shutdown complete")
	return nil
}
