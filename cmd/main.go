package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airquality_dashboard/internal/config"
	_ "airquality_dashboard/internal/docs"
	"airquality_dashboard/internal/handlers"
	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/metrics"
	"airquality_dashboard/internal/publish"
	"airquality_dashboard/internal/repository"
	"airquality_dashboard/internal/repository/db"
	"airquality_dashboard/internal/server"
	"airquality_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml, .env, environment and flags
	cfg, err := config.Load("airquality", os.Args[1:])
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// open DB
	sqlDB, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DBPath)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos, err := repository.NewRepository(sqlDB, cfg.InitialSnapshot(time.Now()))
	if err != nil {
		log.Fatalw("failed to init repositories", "err", err)
	}

	m := metrics.New()
	broker, err := publish.New(cfg.Publish)
	if err != nil {
		log.Fatalw("failed to init publisher", "err", err, "driver", cfg.Publish.Driver)
	}
	pubLog := log.Named("publish")
	pub := publish.NewAsync(
		publish.NewMulti(m, publish.Logged{Publisher: broker, Sink: cfg.Publish.Driver, Log: pubLog}),
		publish.DefaultQueueSize, pubLog,
	)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			log.Errorw("failed to close publishers", "err", cerr)
		}
	}()

	services := service.NewService(repos, pub, log.Named("service"))
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithAllowedOrigins(cfg.AllowedOrigins),
	)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start simulator (via composed service)
	if cfg.Simulator.Enabled {
		log.Infow("simulator enabled", "tick", cfg.Simulator.Tick)
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.HTTPHandler()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
