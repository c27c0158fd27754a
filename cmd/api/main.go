package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "bicocont/internal/adapter/http"
	"bicocont/internal/adapter/middleware"
	"bicocont/internal/adapter/repository/sqlstore"
	"bicocont/internal/config"
	"bicocont/internal/infrastructure/cache"
	"bicocont/internal/infrastructure/db"
	"bicocont/internal/infrastructure/logger"
	"bicocont/internal/infrastructure/metrics"
	"bicocont/internal/usecase/count"
	"bicocont/internal/usecase/material"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DBDSN, cfg.DBLogLevel)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	var matCache material.Cache = cache.NewMemory()
	var countGuard echo.MiddlewareFunc
	if cfg.UseRedis() {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		matCache = cache.NewRedis(rdb)
		countGuard = middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zl)
	}

	mats := material.NewUsecase(
		sqlstore.NewMaterialRepository(gdb),
		sqlstore.NewGormUoW(gdb),
		matCache, m, zl.Named("materials"),
	)
	counts := count.NewUsecase(sqlstore.NewCountRepository(gdb), m)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), middleware.RequestID(), middleware.RequestLogger(zl.Named("http")))

	routes := httpadp.Routes{
		Health:         httpadp.NewHandler(sqlDB),
		Materials:      httpadp.NewMaterialHandler(mats, cfg.UploadMaxBytes(), zl),
		Counts:         httpadp.NewCountHandler(mats, counts, cfg.HistoryLimit, zl),
		CountGuard:     countGuard,
		UploadMaxBytes: cfg.UploadMaxBytes(),
	}
	if m != nil {
		routes.Metrics = m.Handler()
	}
	httpadp.Register(e, routes)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		zl.Info("listening",
			zap.String("addr", addr),
			zap.String("db_driver", cfg.DBDriver),
			zap.Bool("redis", cfg.UseRedis()),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
