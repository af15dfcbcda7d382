package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/api/handler"
	"github.com/truongminh05/VCI-Web/internal/api/router"
	"github.com/truongminh05/VCI-Web/internal/authctx"
	"github.com/truongminh05/VCI-Web/internal/repository"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/database"
	"github.com/truongminh05/VCI-Web/pkg/jwt"
	applogger "github.com/truongminh05/VCI-Web/pkg/logger"
	"github.com/truongminh05/VCI-Web/pkg/metrics"
	"github.com/truongminh05/VCI-Web/pkg/redis"
	"github.com/truongminh05/VCI-Web/pkg/sheet"
	"github.com/truongminh05/VCI-Web/pkg/supabase"
)

func main() {
	// 1. load .env (optional) and configuration
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("VCI_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting admin console backend",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database (schema is owned by the managed backend; no migrations here)
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	logger.Info("database connected")

	// 4. redis (optional: fall back to an in-process session cache)
	var cache authctx.SessionCache
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, sessions kept in memory and login rate limit disabled", zap.Error(err))
		rdb = nil
		cache = authctx.NewMemoryCache()
	} else {
		cache = rdb
	}

	// 5. managed backend clients
	base := supabase.NewClient(&cfg.Supabase)
	authAPI := supabase.NewAuthClient(base)
	functions := supabase.NewFunctionsClient(base)
	tokens := jwt.NewManager(&cfg.Supabase)

	// 6. console sessions
	repo := repository.NewRepository(db)
	profiles := authctx.RepoProfileLoader{Repo: repo.Profile}
	sessions := authctx.NewRegistry(func(sid string) authctx.Provider {
		return authctx.NewSupabaseProvider(sid, authAPI, cache, tokens, cfg.Auth.SessionTTL)
	}, profiles, logger).WithCache(cache)

	// 7. metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	metrics.RegisterSessionGauge(reg, sessions.Len)

	// 8. dependency injection: Repository → Service → Handler
	svc := service.NewService(cfg, repo, sessions, functions, sheet.NewClient(&cfg.Sheet), m, logger)
	h := handler.NewHandler(svc, &cfg.Auth)

	engine := router.Setup(cfg, h, router.Deps{
		Sessions: sessions,
		Redis:    rdb,
		DB:       db,
		Gatherer: reg,
		Metrics:  m,
		Logger:   logger,
	})

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// drop sessions that ended at the provider without another request
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(cfg.Auth.SessionSweep)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(sweepCtx); n > 0 {
					logger.Info("evicted ended sessions", zap.Int("count", n))
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	stopSweep()
	sessions.Close()

	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
