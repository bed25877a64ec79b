package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/richclient/internal/config"
	http_controllers "github.com/mrlokans/richclient/internal/http"
	"github.com/mrlokans/richclient/internal/logging"
	"github.com/mrlokans/richclient/internal/scheduler"
	"github.com/mrlokans/richclient/internal/security"
	"github.com/mrlokans/richclient/internal/session"
	"github.com/mrlokans/richclient/internal/store"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

func Run(cfg *config.Config, version string) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting richclient", zap.String("version", version))

	db, err := session.OpenDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("error closing session database", zap.Error(err))
		}
	}()

	sessionManager, err := session.NewManager(db, cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}
	defer sessionManager.Close()

	var csrfSecret []byte
	if cfg.Session.CSRFEnabled {
		secret := cfg.Session.Secret
		if secret == "" {
			secret, err = security.GenerateSecret()
			if err != nil {
				return err
			}
			logger.Info("generated CSRF secret (set SESSION_SECRET to persist)")
		}
		csrfSecret = security.DecodeSecret(secret)
	} else {
		logger.Warn("CSRF protection disabled")
	}

	registry := store.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sweeper *scheduler.IdleSweepScheduler
	if cfg.Sweep.Enabled {
		sweeper = scheduler.NewIdleSweepScheduler(registry, cfg.Sweep.Schedule, cfg.Sweep.IdleTTL, logger)
		if err := sweeper.Start(ctx); err != nil {
			return fmt.Errorf("failed to start idle sweep: %w", err)
		}
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Logger:         logger,
		SessionDB:      db,
		SessionManager: sessionManager,
		Registry:       registry,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		TruncateLength: cfg.RichText.TruncateLength,
		Version:        version,
	})

	onShutdown := func(context.Context) {
		if sweeper != nil {
			sweeper.Stop()
		}
	}

	return Serve(router, cfg, logger, onShutdown)
}
