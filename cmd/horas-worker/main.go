package main

import (
	"context"
	"errors"
	"time"

	"horas/internal/amqp"
	"horas/internal/cli"
	applog "horas/internal/log"
	"horas/internal/worker"
)

func main() {
	cfg := cli.LoadConfig()
	logger := cli.SetupLogger(cfg).WithComponent(applog.ComponentWorker)
	logger.Info("Starting horas-worker")

	cli.MustValidate(logger, cfg.ValidateWorker)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize AMQP client", err)
	}
	defer client.Close()

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	w := worker.NewJournalWorker(repo, cfg.JournalKeep)
	if err := w.Prune(ctx); err != nil {
		logger.Error("Startup prune failed", applog.FieldError, err)
	}

	go func() {
		ticker := time.NewTicker(cfg.PruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.Prune(ctx); err != nil {
					logger.Error("Periodic prune failed", applog.FieldError, err)
				}
			}
		}
	}()

	logger.Info("Consuming load events",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		"keep", cfg.JournalKeep)
	if err := client.ConsumeLoadEvents(ctx, w.HandleLoadEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", applog.FieldError, err)
		return
	}
	logger.Info("Worker shutdown complete")
}
