package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// TicketQueueName is the durable queue ticket events are published to.
const TicketQueueName = "ticket.events"

// Sink receives every decoded ticket event.
type Sink interface {
	Write(ctx context.Context, ev TicketEvent) error
}

// FileSink appends a single human-friendly line per event to
// <Dir>/ticket.log.
type FileSink struct {
	Dir string

	mu sync.Mutex
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, ev TicketEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "ticket.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Ticket %s | token=%s | row=%d | column=%d | price=%d\n",
		ev.OccurredAt, ev.Type, ev.Token, ev.Row, ev.Column, ev.Price)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// StartTicketConsumer connects to the broker at url, declares the ticket
// queue (durable) and hands every message to the sinks in order.  It
// reconnects with exponential backoff until ctx is cancelled, then
// returns ctx.Err().  A message that cannot be decoded or stored is
// rejected without requeue so a poison message cannot loop forever.
func StartTicketConsumer(ctx context.Context, url string, log logrus.FieldLogger, sinks ...Sink) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("ticket-consumer: dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, log, sinks)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("ticket-consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log logrus.FieldLogger, sinks []Sink) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("ticket-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(TicketQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(TicketQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(ctx, d.Body, sinks...); err != nil {
				log.WithError(err).Error("ticket-consumer: handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one ticket event and writes it to every sink.
// The first sink error aborts the remaining sinks.
func HandleMessage(ctx context.Context, body []byte, sinks ...Sink) error {
	var ev TicketEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type != TicketPurchased && ev.Type != TicketReturned {
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	for _, s := range sinks {
		if err := s.Write(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
