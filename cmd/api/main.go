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
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/jobs"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

func main() {
	envFile := pflag.String("env-file", ".env", "arquivo .env opcional")
	policyFile := pflag.String("policy", "", "arquivo YAML com expediente, feriados e lembretes (padrão: embutido)")
	pflag.Parse()

	// ---- Configuração ----
	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *policyFile != "" {
		cfg.PolicyFile = *policyFile
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn("invalid timezone, using default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
		cfg.Timezone = timezone.DefaultTimezone
	}

	// ---- Política do salão ----
	policyCfg, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Fatal("failed to load policy", zap.Error(err))
	}
	policy, err := policyCfg.Schedule()
	if err != nil {
		log.Fatal("invalid business hours or holidays", zap.Error(err))
	}
	scheduler, err := policyCfg.ReminderScheduler()
	if err != nil {
		log.Fatal("invalid reminder rules", zap.Error(err))
	}

	// ---- Banco ----
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to init database", zap.Error(err))
	}

	// ---- Trava de reservas ----
	var locker ucAppointment.Locker = lock.NewLocalLocker(cfg.LockTTL())
	if cfg.RedisAddr != "" {
		rdb := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()

		locker = lock.NewRedisLocker(rdb, cfg.LockTTL())
		log.Info("booking lock backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Warn("REDIS_ADDR not set, booking lock limited to this instance")
	}

	// ---- Métricas ----
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		m = metrics.New("salon", prometheus.DefaultRegisterer)
		gatherer = prometheus.DefaultGatherer
	}

	// ---- Auditoria ----
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// ---- HTTP ----
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reminderSvc := routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Policy:    policy,
		Scheduler: scheduler,
		Locker:    locker,
		Audit:     auditDispatcher,
		Metrics:   m,
		Gatherer:  gatherer,
	})

	// ---- Jobs ----
	cron := jobs.New(timezone.Location(cfg.Timezone), log)
	if err := jobs.RegisterReminderJobs(cron, reminderSvc, cfg.BirthdayCron, cfg.ReminderCron); err != nil {
		log.Fatal("failed to register jobs", zap.Error(err))
	}
	cron.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	cron.Stop(shutdownCtx)
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server stopped")
}
