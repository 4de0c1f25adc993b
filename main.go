package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stayflow/api"
	"stayflow/common"
	"stayflow/configs"
	"stayflow/db"
	heartbeatjob "stayflow/jobs/heartbeat"
	metricsjob "stayflow/jobs/metrics"
	"stayflow/metrics"
	"stayflow/services"
	"stayflow/utils"
	"stayflow/worker"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	// best-effort: a missing .env file is fine, envs may be set directly
	_ = godotenv.Load()

	appConfigs := configs.NewAppConfig()

	dbPath := appConfigs.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = utils.GetOrCreateDefaultDBPath()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get or create default database path")
			panic(err)
		}
	}

	if err := db.RunMigrations(appConfigs.MigrationsURL, dbPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
		panic(err)
	}

	repo, err := db.NewSQLiteRepo(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create SQLite repository")
		panic(err)
	}
	defer repo.Close()

	metricsService := metrics.NewMetricsService(appConfigs.MetricsEnabled)

	queueService := services.NewQueueService(repo, metricsService)
	cartService := services.NewCartService(queueService)
	ordersService := services.NewOrdersService(repo, metricsService)
	reservationsService := services.NewReservationsService(repo, queueService, metricsService)
	catalogService := services.NewCatalogService(repo)
	monitoringService := services.NewMonitoringService(repo, queueService)

	ordersWorker := worker.New("orders-worker", common.OrdersQueue, queueService, ordersService.HandleMessage, appConfigs.WorkerInterval, metricsService)
	ordersWorker.Start()
	defer ordersWorker.Stop()

	reservationsWorker := worker.New("reservations-worker", common.ReservationsQueue, queueService, reservationsService.HandleMessage, appConfigs.WorkerInterval, metricsService)
	reservationsWorker.Start()
	defer reservationsWorker.Stop()

	queueDepthJob := metricsjob.NewQueueDepthMetricsJob(
		metricsService,
		queueService,
		[]string{common.OrdersQueue, common.ReservationsQueue},
		appConfigs.QueueDepthEvery,
	)
	defer queueDepthJob.Close()

	if appConfigs.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: appConfigs.RedisAddr})
		defer redisClient.Close()

		heartbeat := heartbeatjob.NewHeartbeatJob(redisClient, appConfigs.ServiceID, appConfigs.HeartbeatEvery)
		defer heartbeat.Close()
	}

	stayflowRouter := api.NewStayflowRouter(cartService, ordersService, reservationsService, catalogService, monitoringService)

	stayflowServer := &http.Server{
		Addr:              appConfigs.Addr,
		Handler:           http.TimeoutHandler(stayflowRouter.NewRouter(), appConfigs.ServerConfig.Timeouts.Handle, "timeout"),
		WriteTimeout:      appConfigs.ServerConfig.Timeouts.Write,
		ReadTimeout:       appConfigs.ServerConfig.Timeouts.Read,
		ReadHeaderTimeout: appConfigs.ServerConfig.Timeouts.ReadHeader,
		IdleTimeout:       appConfigs.ServerConfig.Timeouts.Idle,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", appConfigs.Addr).Msg("server starting")
		serverErrCh <- stayflowServer.ListenAndServe()
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdownCh:
		log.Info().Str("signal", sig.String()).Msg("server shutdown requested")
		if err := stayflowServer.Shutdown(context.Background()); err != nil {
			if err := stayflowServer.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close server")
			}
		}
	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("server shutdown")
		} else {
			log.Warn().Err(err).Msg("server failed")
		}
	}
}
