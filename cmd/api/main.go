package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/cache"
	"catalog/internal/config"
	httpx "catalog/internal/http"
	"catalog/internal/services/catalog"
	"catalog/internal/store/postgres"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	if cfg.App.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	pool := postgres.MustOpen(ctx, cfg.DB.DSN, cfg.ConnectTimeout)
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	courseRepo := postgres.NewCourseRepository(pool)

	// Optional list cache
	var listCache catalog.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Open(ctx, cfg.Redis.Addr, cfg.ConnectTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect fail")
		}
		defer rdb.Close()
		listCache = cache.NewListCache(rdb, "catalog:", cfg.Redis.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("list cache enabled")
	}

	svc, err := catalog.NewService(courseRepo, catalog.Paging{
		DefaultSize: cfg.List.PageSize,
		MaxSize:     cfg.List.MaxPageSize,
		SizeParam:   cfg.List.PageSizeParam,
	}, listCache)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog service config")
	}

	r := httpx.NewRouter(httpx.RouterDependencies{Config: cfg, CatalogService: svc})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("catalog API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
