package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iweather/config"
	v1 "iweather/internal/controllers/http/v1"
	"iweather/internal/repositories"
	"iweather/internal/services/auth"
	"iweather/internal/services/favorites"
	"iweather/internal/services/weather"
	"iweather/pkg/httpserver"
	"iweather/pkg/logger"
	"iweather/pkg/mailer"
	"iweather/pkg/observe"
)

// @title iWeather API
// @version 1.0.0
// @description Weather lookup backend: account registration and login,
// @description favorite-city management and an OpenWeatherMap proxy with
// @description hourly and 5-day forecast digests.

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf := config.NewConfig()

	writers := []io.Writer{os.Stdout}
	if cnf.SentryDSN != "" {
		writers = append(writers, observe.NewSentryHook(cnf.AppEnv, cnf.AppName, 0, !cnf.IsProduction(), cnf.SentryDSN))
	}
	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, writers...)

	if err := cnf.Validate(); err != nil {
		l.Fatal("invalid configuration", map[string]any{"err": err})
	}

	db, err := repositories.OpenSQLite(cnf.DatabasePath)
	if err != nil {
		l.Fatal("cannot open database", map[string]any{"err": err, "path": cnf.DatabasePath})
	}

	users := repositories.NewUserRepository(db, l)

	provider, err := repositories.NewOpenWeatherRepository(cnf.OpenWeatherAPIKey, l, http.DefaultClient)
	if err != nil {
		l.Fatal("cannot init weather provider", map[string]any{"err": err})
	}

	authService := auth.NewService(
		users,
		mailer.NewSendGridMailer(cnf.SendGridAPIKey, cnf.MailFrom),
		auth.NewGoogleVerifier(cnf.GoogleClientID),
		cnf.JWTSecret,
		cnf.FrontendURL,
		l,
	)
	weatherService := weather.NewService(provider, cnf.OpenWeatherAPIKey, l)
	favoritesService := favorites.NewService(users, l)

	app := httpserver.InitFiberServer(cnf.AppName)

	v1.NewRouter(
		app,
		authService,
		weatherService,
		favoritesService,
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
