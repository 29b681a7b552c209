package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weatherapp/config"
	v1 "weatherapp/internal/controllers/http/v1"
	"weatherapp/internal/repositories"
	"weatherapp/internal/services/weather"
	"weatherapp/pkg/httpserver"
	"weatherapp/pkg/observe"
)

// @title Weather Lookup API
// @version 1.0.0
// @description Resolves stored locations by name and serves current, hourly and daily forecasts from the weather database.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather lookup operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	_ = godotenv.Load()

	cnf := config.NewConfig()

	writers := []io.Writer{os.Stdout}
	if cnf.Sentry.DSN != "" {
		writers = append(writers, observe.NewSentryHook(cnf.AppZone, cnf.AppName, cnf.Sentry.Debug, cnf.Sentry.DSN))
	}

	l := observe.NewZapLogger(cnf.AppName, writers...)
	l.SetZone(cnf.AppZone)

	app := httpserver.InitFiberServer(cnf.AppName)

	store, err := repositories.NewSQLiteStore(cnf, l)
	if err != nil {
		l.Fatal("cannot open weather store", map[string]any{"err": err, "path": cnf.Database.Path})
	}

	service := weather.NewWeatherService(store, l)

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
		_ = store.Close()
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
