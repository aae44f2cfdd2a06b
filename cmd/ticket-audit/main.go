// Command ticket-audit consumes ticket events from the broker and records
// them in logs/ticket.log and, when a database is configured, in the
// ticket_events table.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/cinema-room-service/internal/config"
	"github.com/iliyamo/cinema-room-service/internal/database"
	"github.com/iliyamo/cinema-room-service/internal/logger"
	"github.com/iliyamo/cinema-room-service/internal/queue"
	"github.com/iliyamo/cinema-room-service/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := []queue.Sink{&queue.FileSink{Dir: cfg.AuditLogDir}}
	if cfg.DBEnabled() {
		db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.WithError(err).Fatal("open audit database")
		}
		defer db.Close()
		journal := repository.NewTicketEventRepo(db)
		if err := journal.EnsureSchema(ctx); err != nil {
			log.WithError(err).Fatal("prepare audit schema")
		}
		sinks = append(sinks, journal)
	}

	log.WithField("queue", queue.TicketQueueName).Info("ticket-audit consumer starting")
	if err := queue.StartTicketConsumer(ctx, cfg.AMQPURL, log, sinks...); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("ticket-audit consumer stopped")
	}
	log.Info("ticket-audit consumer stopped")
}
