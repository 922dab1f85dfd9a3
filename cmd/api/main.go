package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentportal_backend/internal/auth"
	"agentportal_backend/internal/events"
	"agentportal_backend/internal/feed"
	"agentportal_backend/internal/gamification"
	"agentportal_backend/internal/gamification/rules"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/internal/http/router"
	"agentportal_backend/internal/leaderboard"
	"agentportal_backend/internal/leads"
	"agentportal_backend/internal/notifications"
	"agentportal_backend/internal/scheduler"
	"agentportal_backend/internal/settings"
	"agentportal_backend/internal/tasks"
	"agentportal_backend/platform/clock"
	"agentportal_backend/platform/config"
	"agentportal_backend/platform/logger"
	"agentportal_backend/platform/validator"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	rdb := initRedis(ctx, cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	gamRules, err := rules.Load(cfg.GetGamificationRulesPath())
	if err != nil {
		log.Error("failed to load gamification rules", "error", err)
		panic("failed to load gamification rules: " + err.Error())
	}

	clk := clock.New()

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(cfg, log)
	leadsModule := leads.NewModule(eventBus, reminderScheduler, val, log)
	tasksModule := tasks.NewModule(eventBus, log)
	gamificationModule := gamification.NewModule(eventBus, gamRules, authModule.Service(), log)
	notificationsModule := notifications.NewModule(eventBus, log)
	feedModule := feed.NewModule(cfg, clk, eventBus, log)
	defer feedModule.Stop()

	modules := []apphttp.Module{
		authModule,
		leadsModule,
		tasksModule,
		gamificationModule,
		notificationsModule,
		feedModule,
	}

	var health apphttp.HealthChecker
	if rdb != nil {
		modules = append(modules,
			leaderboard.NewModule(rdb, authModule.Service(), gamificationModule.Service(), log),
			settings.NewModule(rdb, log),
		)
		health = redisHealth{rdb: rdb}
	} else {
		log.Warn("REDIS_URL not configured; leaderboard and settings endpoints disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.GetRedisURL() != "" {
		worker, err := scheduler.NewWorker(cfg, eventBus, log)
		if err != nil {
			log.Error("failed to initialize reminder worker", "error", err)
		} else {
			group.Go(func() error {
				log.Info("reminder worker started", "queue", cfg.GetAsynqQueueName())
				return worker.Run()
			})
			group.Go(func() error {
				<-groupCtx.Done()
				worker.Shutdown()
				return nil
			})
		}
	}

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

func initRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		return nil
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}

	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("failed to connect to redis", "error", err)
		_ = rdb.Close()
		return nil
	}

	log.Info("redis connection established")
	return rdb
}

type redisHealth struct {
	rdb *redis.Client
}

func (h redisHealth) Ping(ctx context.Context) error {
	return h.rdb.Ping(ctx).Err()
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}
