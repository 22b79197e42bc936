package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"horas/internal/backend"
	"horas/internal/cli"
	"horas/internal/core"
	apphttp "horas/internal/http"
	applog "horas/internal/log"
	"horas/internal/services"
)

func main() {
	cfg := cli.LoadConfig()
	logger := cli.SetupLogger(cfg)
	cli.MustValidate(logger, cfg.Validate)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger, "Invalid backend configuration", err)
	}

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	be, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize backend", err, "source", bcfg.Source.String())
	}
	defer func() {
		if err := be.Close(); err != nil {
			logger.Warn("Backend cleanup failed", applog.FieldError, err)
		}
	}()

	svc := services.NewDashboardService(be.Reader, cfg.TimesheetYear, core.MustLocale(cfg.Locale),
		services.WithRecorder(be.Recorder),
		services.WithFetchTimeout(cfg.FetchTimeout),
		services.WithLogger(logger.WithComponent(applog.ComponentDashboard)))

	// A failed first load still starts the server; the page shows the error
	// and the reload button retries.
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	if _, err := svc.Load(loadCtx); err != nil {
		logger.Error("Initial timesheet load failed", applog.FieldError, err)
	}
	loadCancel()

	srv := apphttp.NewServer(":"+cfg.Port, svc,
		apphttp.WithHistory(be.History),
		apphttp.WithLogger(logger),
		apphttp.WithReloadTimeout(cfg.FetchTimeout))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.FetchTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting horas server",
			"port", cfg.Port,
			applog.FieldYear, cfg.TimesheetYear,
			applog.FieldSource, bcfg.Source.String(),
			"journal", bcfg.Journal.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		return
	}
	logger.Info("Server stopped gracefully")
}
