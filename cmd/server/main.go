package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // panic recovery and request ids

	"github.com/iliyamo/theater-staff/internal/config"
	"github.com/iliyamo/theater-staff/internal/database"
	"github.com/iliyamo/theater-staff/internal/handler"
	"github.com/iliyamo/theater-staff/internal/logger"
	"github.com/iliyamo/theater-staff/internal/middleware"
	"github.com/iliyamo/theater-staff/internal/queue"
	"github.com/iliyamo/theater-staff/internal/repository"
	"github.com/iliyamo/theater-staff/internal/router"
	"github.com/iliyamo/theater-staff/internal/scan"
	publisher "github.com/iliyamo/theater-staff/internal/service"
	"github.com/iliyamo/theater-staff/internal/session"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load() // Load environment config
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		log.Error("database migrate failed", "err", err)
		os.Exit(1)
	}

	// Sessions live in Redis, so there is no degraded mode without it.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Error("redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	employees := repository.NewEmployeeRepo(db)
	seedEmployee(ctx, employees, cfg.BcryptCost)

	movies := repository.NewCachedMovies(repository.NewMovieRepo(db), rdb, config.LoadCacheConfig(), log)
	tickets := repository.NewTicketRepo(db)
	sessions := session.NewManager(session.NewRedisStore(rdb, "theater"), log)
	gates := scan.NewRegistry(cfg.ScanCooldown)
	defer gates.Close()

	brokerURL := queue.BrokerURL(os.Getenv)
	admissionLog := queue.NewAdmissionLog(cfg.AdmissionLog)
	defer admissionLog.Close()
	consumer := &queue.AdmissionConsumer{URL: brokerURL, Out: admissionLog, Log: logger.With("component", "admission-consumer")}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("admission consumer stopped", "err", err)
		}
	}()

	clock := handler.Clock{Offset: cfg.TheaterOffset}
	guards := router.Guards{
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessions,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.RegisterRoutes(e, map[string]handler.Probe{
		"mysql": db.PingContext,
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, employees, sessions, gates, log), guards)
	schedule := handler.NewScheduleHandler(movies, clock, log)
	schedule.Cache = movies
	router.RegisterSchedule(e, schedule, handler.NewDashboardHandler(movies, tickets, clock, log), guards)
	router.RegisterScan(e, handler.NewScanHandler(gates, tickets, publisher.New(brokerURL, log), clock, log), guards)

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "theater_offset", cfg.TheaterOffset.String())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}

// seedEmployee creates the first staff account from SEED_EMPLOYEE_* when set.
// An existing account with the same email is left alone.
func seedEmployee(ctx context.Context, repo *repository.EmployeeRepo, cost int) {
	email := os.Getenv("SEED_EMPLOYEE_EMAIL")
	password := os.Getenv("SEED_EMPLOYEE_PASSWORD")
	if email == "" || password == "" {
		return
	}
	name := os.Getenv("SEED_EMPLOYEE_NAME")
	if name == "" {
		name = "Manager"
	}
	role := os.Getenv("SEED_EMPLOYEE_ROLE")
	if role == "" {
		role = "MANAGER"
	}
	id, err := repo.Create(ctx, name, email, password, role, cost)
	switch {
	case errors.Is(err, repository.ErrEmailExists):
		return
	case err != nil:
		logger.Warn("seed employee failed", "err", err)
	default:
		logger.Info("seeded employee", "employee_id", id, "email", email)
	}
}
