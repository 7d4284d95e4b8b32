package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sgs-events/eventdesk/internal/api"
	"github.com/sgs-events/eventdesk/internal/config"
	"github.com/sgs-events/eventdesk/internal/factory"
	"github.com/sgs-events/eventdesk/internal/services/login"
	redisstorage "github.com/sgs-events/eventdesk/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	if cfg.AdminPassword == "" {
		logger.Error("ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	// Build factory config from environment
	loginCfg := login.DefaultConfig()
	loginCfg.SessionDuration = cfg.SessionTTL
	loginCfg.LockoutWindow = cfg.LockoutWindow
	loginCfg.MaxAttempts = cfg.MaxCodeAttempts

	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.StorageType,
		DataDir:       cfg.DataDir,
		AllowListPath: cfg.AllowListPath,
		AdminPassword: cfg.AdminPassword,
		LoginConfig:   loginCfg,
	}

	// Configure Redis if storage type is redis
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		LoginService:        app.LoginService,
		RegistrationService: app.RegistrationService,
		NoticeService:       app.NoticeService,
		RateLimitPerMinute:  cfg.RateLimitPerMin,
		RateLimitBurst:      cfg.RateLimitPerMin,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.HTTPPort
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
