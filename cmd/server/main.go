// Package main is the entry point for the Stay Browser server.
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

	gorillahandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/api"
	"github.com/stay-browser/server/internal/api/handlers"
	"github.com/stay-browser/server/internal/catalog"
	"github.com/stay-browser/server/internal/config"
	"github.com/stay-browser/server/internal/logging"
	"github.com/stay-browser/server/internal/metrics"
	"github.com/stay-browser/server/internal/session"
	"github.com/stay-browser/server/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	// Health check mode for Docker HEALTHCHECK
	if cfg.HealthCheck {
		if err := runHealthCheck(cfg.Addr); err != nil {
			fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Allow overriding version via environment (e.g., injected by container build/runtime)
	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting stay browser",
		zap.String("version", version),
		zap.String("env", cfg.Env),
		zap.String("catalog_url", cfg.Catalog.URL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	recorder := metrics.Recorder{}

	// Initialize WebSocket hub
	hub := websocket.NewHub(log.Named("websocket"))
	go hub.Run(ctx)
	events := websocket.NewEventBroadcaster(hub, log)

	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Timeout, log.Named("catalog"))
	loader := catalog.NewLoader(client, log.Named("catalog"), events, recorder)

	pages, err := handlers.NewPages()
	if err != nil {
		return err
	}

	sessions := session.NewManager(session.Options{
		Lifetime:   cfg.Session.Lifetime,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure || cfg.IsProduction(),
	})

	first, last := cfg.Dates.Bounds()
	svc := handlers.NewServices(sessions, loader, pages,
		handlers.DateBounds{Min: first, Max: last},
		log, events, recorder)

	var handler http.Handler = api.NewRouter(svc, hub, metrics.Handler(), log)
	if len(cfg.CORS.Origins) > 0 {
		handler = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(cfg.CORS.Origins),
			gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
			gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
			gorillahandlers.AllowCredentials(),
		)(handler)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://localhost" + addr + "/api/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
