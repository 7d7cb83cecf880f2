package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dronefleet/cmd"
)

func main() {
	configs := getConfigs()
	logger := slog.Default()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := app.CreateEventConsumer()
	if err != nil {
		log.Fatalf("Failed to create event consumer: %v", err)
	}
	go func() {
		if runErr := consumer.Run(ctx); runErr != nil && ctx.Err() == nil {
			logger.ErrorContext(ctx, "Event consumer stopped", "error", runErr)
		}
	}()
	defer consumer.Close()

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:          goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup: goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		MaxDistanceKm:      goDotEnvFloat("MAX_DISTANCE_KM"),
		ConsumptionPerKm:   goDotEnvFloat("BATTERY_CONSUMPTION_PER_KM"),
		ReturnTransitDelay: goDotEnvDuration("RETURN_TRANSIT_DELAY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func goDotEnvDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}
