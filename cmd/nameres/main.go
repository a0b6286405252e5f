package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/config"
	dbRedis "github.com/kailas-cloud/nameres/internal/db/redis"
	logpkg "github.com/kailas-cloud/nameres/internal/logger"
	"github.com/kailas-cloud/nameres/internal/metrics"
	lookuprepo "github.com/kailas-cloud/nameres/internal/repository/lookup"
	"github.com/kailas-cloud/nameres/internal/repository/selectcache"
	synonymsrepo "github.com/kailas-cloud/nameres/internal/repository/synonyms"
	chiTransport "github.com/kailas-cloud/nameres/internal/transport/chi"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/nameres/internal/usecase/lookup"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
	synonymsuc "github.com/kailas-cloud/nameres/internal/usecase/synonyms"
	"github.com/kailas-cloud/nameres/internal/version"
)

// selecter is what the repositories need from the engine, cached or not.
type selecter interface {
	Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting nameres API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("solr_url", cfg.Solr.URL),
		zap.String("solr_core", cfg.Solr.Core),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterSolrMetrics()

	solrClient := solr.NewClient(&solr.Config{
		BaseURL: cfg.Solr.URL,
		Core:    cfg.Solr.Core,
		Timeout: cfg.Solr.Timeout(),
		Logger:  logger,
	})

	// Optional response cache in front of the engine.
	// cachePinger stays a nil interface when the cache is off.
	var engine selecter = solrClient
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		engine = selectcache.New(solrClient, store, cfg.Cache.TTL(), metrics.SelectCacheTotal, logger)
		cachePinger = store
	}

	// Use case services
	lookupSvc := lookupuc.New(lookuprepo.New(engine), cfg.Lookup.BulkConcurrency)
	synonymsSvc := synonymsuc.New(synonymsrepo.New(engine))
	statusSvc := statusuc.New(solrClient, cfg.Solr.StatusCore, statusuc.Metadata{
		BabelVersion:    cfg.Metadata.BabelVersion,
		BabelVersionURL: cfg.Metadata.BabelVersionURL,
		BiolinkModelTag: cfg.Metadata.BiolinkModelTag,
		BiolinkModelURL: cfg.Metadata.BiolinkModelURL,
		NameResVersion:  version.Version,
	})
	healthSvc := healthuc.New(solrClient, cachePinger)

	server := chiTransport.NewServer(lookupSvc, synonymsSvc, statusSvc, healthSvc, version.Version, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(corsHandler.Handler)
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
