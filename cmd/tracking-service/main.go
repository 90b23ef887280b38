package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/radyab-gps/tracking-service/internal/app/background"
	"github.com/radyab-gps/tracking-service/internal/broadcast"
	"github.com/radyab-gps/tracking-service/internal/config"
	deliveryhttp "github.com/radyab-gps/tracking-service/internal/delivery/http"
	"github.com/radyab-gps/tracking-service/internal/delivery/http/handlers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/kafka"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/metrics"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/migrate"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/repository"
	"github.com/radyab-gps/tracking-service/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.Migrations.Path != "" {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	deviceRepo := repository.NewDefaultDeviceRepository(db)
	gpsRepo := repository.NewDefaultGpsRecordRepository(db)
	userRepo := repository.NewDefaultUserRepository(db)
	accessRepo := repository.NewDefaultDeviceAccessRepository(db)
	walletRepo := repository.NewDefaultWalletRepository(db)
	requestRepo := repository.NewDefaultRequestRepository(db)
	serviceRepo := repository.NewDefaultServiceRepository(db)
	subPlanRepo := repository.NewDefaultSubPlanRepository(db)
	txManager := repository.NewGormTxManager(db)

	trackingMetrics := metrics.NewTrackingMetrics()

	// Kafka is optional: without it the durable log and SSE still work.
	var publisher *kafka.EventPublisher
	if cfg.Kafka.Enabled {
		publisher = kafka.NewEventPublisher([]string{fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)})
		defer publisher.Close()
	}

	hub := broadcast.NewHub()
	defer hub.Close()

	// Init usecases
	trackingUc := usecase.NewDefaultTrackingUsecase(deviceRepo, gpsRepo, userRepo, accessRepo, hub, publisher, trackingMetrics)
	deviceUc := usecase.NewDefaultDeviceUsecase(deviceRepo, accessRepo, userRepo, cfg.Monitor.TimeoutWindow)
	walletUc := usecase.NewDefaultWalletUsecase(walletRepo, userRepo, publisher, trackingMetrics)
	requestUc := usecase.NewDefaultRequestUsecase(requestRepo, walletUc, txManager)
	serviceUc := usecase.NewDefaultServiceUsecase(serviceRepo, subPlanRepo, requestRepo, walletUc, deviceUc, txManager)

	// Init HTTP handlers
	trackingHandler := handlers.NewTrackingHandler(trackingUc, deviceUc, hub, trackingMetrics)
	walletHandler := handlers.NewWalletHandler(walletUc, requestUc)
	serviceHandler := handlers.NewServiceHandler(serviceUc)
	adminHandler := handlers.NewAdminHandler(requestUc, serviceUc)

	e := deliveryhttp.NewRouter(cfg.Auth.JWTSecret, trackingHandler, walletHandler, serviceHandler, adminHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connectivity sweep
	tasks := background.NewBackgroundTasks(deviceUc, trackingMetrics, cfg.Monitor.SweepInterval)
	tasks.StartAll(ctx)

	go func() {
		address := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
		log.Printf("HTTP server started on %s\n", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v\n", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v\n", err)
	}
}
