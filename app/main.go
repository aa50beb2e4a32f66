package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"patientservice/config"
	"patientservice/domain"
	"patientservice/middleware"
	"patientservice/services/patient/billing"
	"patientservice/services/patient/delivery"
	"patientservice/services/patient/repository"
	"patientservice/services/patient/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	db, err := config.BootDB(context.Background())
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}
	defer db.Close()

	var billingNotifier domain.BillingNotifier
	if url := config.GetBillingServiceURL(); url != "" {
		billingNotifier = billing.NewHTTPNotifier(url)
	} else {
		log.Warn("BILLING_SERVICE_URL not set, billing notifications disabled")
		billingNotifier = billing.NewNoopNotifier()
	}

	patientRepo := repository.NewPatientRepository(db)
	patientUC := usecase.NewPatientUseCase(patientRepo, billingNotifier, log, 10*time.Second)
	delivery.NewPatientHandler(app, patientUC, log)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
