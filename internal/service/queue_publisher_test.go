package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/iliyamo/cinema-room-service/internal/queue"
)

// silentBroker accepts TCP connections and never answers the AMQP
// handshake.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestPublishHonoursContextDeadline(t *testing.T) {
	p := NewAMQPPublisher(silentBroker(t))
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Publish(ctx, queue.TicketEvent{Type: queue.TicketPurchased})
	if err == nil {
		t.Fatal("publish to a silent broker succeeded")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("Publish returned after %s", elapsed)
	}
}

func TestPublishExpiredContext(t *testing.T) {
	p := NewAMQPPublisher(silentBroker(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, queue.TicketEvent{Type: queue.TicketPurchased}); err == nil {
		t.Fatal("publish with a cancelled context succeeded")
	}
}

func TestPurchaseNotHeldByStalledBroker(t *testing.T) {
	b := newBoxOffice(NewAMQPPublisher(silentBroker(t)))
	b.publishTimeout = 300 * time.Millisecond

	start := time.Now()
	p, err := b.Purchase(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if _, err := b.Refund(context.Background(), p.Token.String()); err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("purchase and refund took %s", elapsed)
	}
}
