package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"

	server "india_travel/internal/adapters/http_server"
	"india_travel/internal/adapters/observability"
	redisad "india_travel/internal/adapters/redis"
	"india_travel/internal/app"
	"india_travel/internal/catalog"
	"india_travel/internal/domain"
	"india_travel/internal/shared"
	mysqlrepo "india_travel/internal/storage/mysql"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(observability.LogOptions{
		Env: cfg.AppEnv, Level: cfg.LogLevel, File: cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// catalog: loaded once, read-only afterwards
	src, closeSrc, err := catalogSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("catalog source unavailable")
	}
	cat, err := catalog.Open(ctx, src)
	closeSrc()
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("catalog load failed")
	}
	observability.SetCatalogSize(cat.Len())
	log.Info().Int("destinations", cat.Len()).Str("source", cfg.CatalogSource).Msg("catalog loaded")

	// rate limiting
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.RateLimit).Msg("invalid rate limit")
	}
	store, closeStore := limiterStore(ctx, cfg)
	defer closeStore()

	views, err := server.NewViews()
	if err != nil {
		log.Fatal().Err(err).Msg("template parse failed")
	}

	// http
	srv := server.New(server.Options{
		Timeout:    cfg.RequestTimeout,
		MaxRPS:     cfg.MaxRPS,
		LimitStore: store,
		Limit:      rate,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: app.NewQueryService(cat), Views: views})

	g, gctx := errgroup.WithContext(ctx)
	serve(gctx, g, "API", &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	})
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.MetricsHandler(reg))
		serve(gctx, g, "metrics", &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}

// serve runs srv until ctx is cancelled, then drains it.
func serve(ctx context.Context, g *errgroup.Group, name string, srv *http.Server) {
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg(name + " listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
}

func catalogSource(cfg shared.Config) (domain.CatalogSource, func(), error) {
	switch cfg.CatalogSource {
	case "file":
		return catalog.FileSource{Path: cfg.CatalogFile}, func() {}, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil
	default:
		return catalog.EmbeddedSource{}, func() {}, nil
	}
}

// limiterStore prefers Redis so replicas share counters; without Redis,
// each process keeps its own counters in memory.
func limiterStore(ctx context.Context, cfg shared.Config) (limiter.Store, func()) {
	if cfg.RedisAddr == "" {
		return memory.NewStore(), func() {}
	}
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	store, err := rc.LimiterStore()
	if err != nil {
		log.Fatal().Err(err).Msg("redis limiter store failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("rate limits shared via redis")
	return store, func() { _ = rc.Close() }
}
