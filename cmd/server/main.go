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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DailyInvestors/Network-Repairs/internal/api"
	"github.com/DailyInvestors/Network-Repairs/internal/config"
	"github.com/DailyInvestors/Network-Repairs/internal/logging"
	"github.com/DailyInvestors/Network-Repairs/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	authToken := ""
	if cfg.Server.RequireAuth {
		authToken = cfg.Server.AuthToken
	}

	e := api.NewServer(&api.Dependencies{
		Store:          fileStore,
		Logger:         logger,
		Version:        Version,
		AuthToken:      authToken,
		BodyLimit:      cfg.Server.BodyLimit,
		RequestLogging: cfg.Logging.RequestLogging,
		ExposeDetails:  cfg.Logging.Level == "debug",
	})

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      e,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	logger.Info("upload endpoint starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("config", configPath),
		zap.String("listen", cfg.GetServerAddr()),
		zap.String("uploads", cfg.GetUploadDir()),
		zap.Bool("auth", authToken != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// resolveConfigPath prefers FNUPLOAD_CONFIG, then the file next to the executable.
func resolveConfigPath() (string, error) {
	if p := os.Getenv("FNUPLOAD_CONFIG"); p != "" {
		return p, nil
	}

	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName), nil
}
