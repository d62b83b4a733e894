package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/config"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geolocate"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/handlers"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/logger"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/routing"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the route API and the admin listener",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, settings, logger.L())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, l *slog.Logger) error {
	h, cleanup, err := buildHandler(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer cleanup()

	if l.Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	api := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewEngine(h, l, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	admin := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           handlers.NewAdminRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 2)
	for _, srv := range []*http.Server{api, admin} {
		go func(srv *http.Server) {
			l.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}(srv)
	}

	select {
	case <-ctx.Done():
		l.Info("shutting_down")
	case err = <-errs:
		l.Error("server_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range []*http.Server{api, admin} {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			l.Warn("shutdown_failed", "addr", srv.Addr, "error", serr)
		}
	}
	return err
}

// buildHandler opens the optional backends named in cfg. A backend that
// fails to open is an error; one that is not configured is skipped.
func buildHandler(ctx context.Context, cfg *config.Config, l *slog.Logger) (*handlers.RoutingHandler, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				l.Warn("close_failed", "error", err)
			}
		}
	}

	h := handlers.NewRoutingHandler(routing.NewService(cfg.Routing, l), l)

	if cfg.GraphFile != "" {
		g, err := graphs.LoadGraphFromFile(cfg.GraphFile)
		if err != nil {
			return nil, cleanup, err
		}
		h.Graph = g
		l.Info("graph_loaded", "path", cfg.GraphFile, "nodes", g.Len(), "edges", g.EdgeCount())
	}

	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, pg.Close)
		if err := pg.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		h.Store = pg
		l.Info("route_history_enabled")
	}

	if cfg.RedisAddr != "" {
		client, err := store.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, client.Close)
		h.Cache = store.NewRedisCache(client, cfg.CacheTTL)
		l.Info("route_cache_enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	if cfg.GeoIPDB != "" {
		locator, err := geolocate.OpenGeoIP(cfg.GeoIPDB)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, locator.Close)
		h.Locator = locator
		l.Info("origin_lookup_enabled", "db", cfg.GeoIPDB)
	}

	return h, cleanup, nil
}
