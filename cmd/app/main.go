package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"orderboard/cmd"
	httpadapter "orderboard/internal/adapters/in/http"
	"orderboard/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() { _ = app.Close() }()

	ctx := context.Background()

	dashboard := app.CreateDashboardListener()
	if err := dashboard.Start(ctx); err != nil {
		log.Fatalf("Failed to start dashboard listener: %v", err)
	}
	defer dashboard.Close()

	rehydraters := []jobs.Rehydrater{dashboard}
	station, err := app.CreateStationListener()
	if err != nil {
		log.Fatalf("Failed to build station listener: %v", err)
	}
	if station != nil {
		if err := station.Start(ctx); err != nil {
			log.Fatalf("Failed to start station listener: %v", err)
		}
		defer station.Close()
		rehydraters = append(rehydraters, station)
	}

	jobManager := jobs.NewJobManager(logger, rehydraters...)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		OrderBackendURL:         goDotEnvVariable("ORDER_BACKEND_URL"),
		PrintServiceURL:         goDotEnvVariable("PRINT_SERVICE_URL"),
		RedisAddr:               goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:           goDotEnvVariable("REDIS_PASSWORD"),
		RedisPrefix:             goDotEnvVariable("REDIS_PREFIX"),
		RestaurantID:            goDotEnvVariable("RESTAURANT_ID"),
		RestaurantName:          goDotEnvVariable("RESTAURANT_NAME"),
		LocationID:              goDotEnvVariable("LOCATION_ID"),
		LocationName:            goDotEnvVariable("LOCATION_NAME"),
		PrinterID:               goDotEnvVariable("PRINTER_ID"),
		PrinterName:             goDotEnvVariable("PRINTER_NAME"),
		StationID:               goDotEnvVariable("STATION_ID"),
		StationName:             goDotEnvVariable("STATION_NAME"),
		StationTags:             splitTags(goDotEnvVariable("STATION_TAGS")),
		BroadcastOnWriteFailure: goDotEnvVariable("BROADCAST_ON_WRITE_FAILURE") == "true",
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

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	statusHandler, err := app.CreateChangeOrderStatusCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build status handler: %v", err)
	}
	itemHandler, err := app.CreateChangeOrderItemStatusCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build item handler: %v", err)
	}
	activeHandler, err := app.CreateGetActiveOrdersQueryHandler()
	if err != nil {
		log.Fatalf("Failed to build active orders handler: %v", err)
	}
	completedHandler, err := app.CreateGetCompletedOrdersQueryHandler()
	if err != nil {
		log.Fatalf("Failed to build completed orders handler: %v", err)
	}
	statsHandler, err := app.CreateGetItemStatsQueryHandler()
	if err != nil {
		log.Fatalf("Failed to build stats handler: %v", err)
	}

	server := httpadapter.NewServer(
		statusHandler, itemHandler, activeHandler, completedHandler, statsHandler)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
