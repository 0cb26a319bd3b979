package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"skybrief/config"
	v1 "skybrief/internal/controllers/http/v1"
	"skybrief/internal/repositories"
	"skybrief/internal/services/report"
	"skybrief/pkg/httpserver"
	"skybrief/pkg/observe"
)

// @title Skybrief
// @version 1.0.0
// @description Turns free-text coordinate messages into columnar weather reports:
// @description ground and upper-air wind, cloud base and sky state per time window,
// @description built from multi-model open-meteo forecasts.

// @host localhost:8080
// @BasePath /
// @schemes http

// @tag.name Report
// @tag.description Weather report operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cnf := config.NewConfig()

	writers := []io.Writer{os.Stdout}
	if cnf.SentryDSN != "" {
		writers = append(writers, observe.NewSentryHook(cnf.AppEnv, cnf.AppName, cnf.SentryDSN, cnf.AppEnv == "development"))
	}
	l := observe.NewZapLogger(cnf.AppName, cnf.AppEnv, writers...)

	app := httpserver.InitFiberServer(cnf.AppName)

	forecasts, geocoder := repositories.InitRepositories(cnf, l)

	if len(cnf.OpenMeteo.WindModels) != 2 {
		l.Fatal("exactly two wind models are required", map[string]any{"configured": cnf.OpenMeteo.WindModels})
	}
	service := report.NewReportService(forecasts, geocoder, cnf.OpenMeteo.WindModels[0], cnf.OpenMeteo.WindModels[1], l)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
