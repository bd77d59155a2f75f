package main

import (
	"log"

	"github.com/hostflow/hostflow-server/config"
	"github.com/hostflow/hostflow-server/internal/calendar"
	"github.com/hostflow/hostflow-server/internal/handler"
	"github.com/hostflow/hostflow-server/internal/middleware"
	"github.com/hostflow/hostflow-server/internal/repository"
	"github.com/hostflow/hostflow-server/internal/service"
	"github.com/hostflow/hostflow-server/pkg/database"
	"github.com/hostflow/hostflow-server/pkg/rabbitmq"
	"github.com/hostflow/hostflow-server/pkg/vault"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: reconciliation still works without downstream
	// consumers, so a broken broker only logs.
	var publisher *rabbitmq.Publisher
	if p, err := rabbitmq.NewPublisher(cfg.RabbitURL); err != nil {
		log.Printf("[Main] RabbitMQ unavailable, events disabled: %v", err)
	} else {
		publisher = p
		defer publisher.Close()
	}

	// Repositories
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, guestRepo, propertyRepo, transactionRepo)
	fetcher := calendar.NewFetcher(cfg.RelayBaseURL)
	var eventPublisher calendar.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	syncSvc := calendar.NewSyncService(fetcher, bookingRepo, propertyRepo, eventPublisher)
	vaultClient := vault.NewClient(cfg.VaultBaseURL, cfg.VaultBucket)
	backupSvc := service.NewBackupService(vaultClient, propertyRepo, bookingRepo, guestRepo, transactionRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "hostflow-server"})
	})

	handler.NewBookingHandler(bookingSvc, guestRepo).RegisterRoutes(e)
	handler.NewCalendarHandler(syncSvc).RegisterRoutes(e)
	handler.NewPropertyHandler(propertyRepo, backupSvc).RegisterRoutes(e)

	log.Printf("HostFlow server starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
