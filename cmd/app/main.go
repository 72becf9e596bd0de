package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"routekeeper/cmd"
	httpin "routekeeper/internal/adapters/in/http"
	"routekeeper/internal/api/servers"
	"routekeeper/internal/offline"
	"routekeeper/internal/pkg/obs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	worker, err := app.NewOfflineWorker(ctx)
	if err != nil {
		log.Warnf("Offline cache unavailable: %v", err)
	}

	startWebServer(ctx, app, worker, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, worker *offline.Worker, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			c.SetRequest(c.Request().WithContext(obs.WithRequestID(c.Request().Context(), id)))
			return next(c)
		}
	})

	if worker != nil && worker.State() == offline.Activated {
		e.Use(offline.Middleware(worker, func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/swagger/") || path == "/health"
		}))
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		log.Fatalf("Error loading API document: %v", err)
	}
	validator, err := servers.RequestValidator(doc)
	if err != nil {
		log.Fatalf("Error building request validator: %v", err)
	}
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if err := httpin.RegisterSwagger(e); err != nil {
		log.Fatalf("Error registering swagger: %v", err)
	}

	server := httpin.NewServer(httpin.Handlers{
		AddPackage:         app.CreateAddPackageCommandHandler(),
		ScanLabel:          app.CreateScanLabelCommandHandler(),
		MarkDelivered:      app.CreateMarkDeliveredCommandHandler(),
		RemoveStop:         app.CreateRemoveStopCommandHandler(),
		ClearRoute:         app.CreateClearRouteCommandHandler(),
		OptimizeRoute:      app.CreateOptimizeRouteCommandHandler(),
		PruneRoute:         app.CreatePruneRouteCommandHandler(),
		CompleteOnboarding: app.CreateCompleteOnboardingCommandHandler(),
		GetPackages:        app.CreateGetPackagesQueryHandler(),
		GetStops:           app.CreateGetStopsQueryHandler(),
		GetRouteStats:      app.CreateGetRouteStatsQueryHandler(),
		GetNavigationLink:  app.CreateGetNavigationLinkQueryHandler(),
		GetOnboarding:      app.CreateGetOnboardingQueryHandler(),
	}, logger)
	servers.RegisterHandlers(e, server)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
