// Package service coordinates the seat grid and the ticket ledger behind a
// single lock so that every sale and refund is atomic.
package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-room-service/internal/model"
	"github.com/iliyamo/cinema-room-service/internal/queue"
	"github.com/iliyamo/cinema-room-service/internal/repository"
)

const publishTimeout = 2 * time.Second

// Purchase is the outcome of a successful sale: the seat that was sold
// and the token that redeems it.
type Purchase struct {
	Token uuid.UUID
	Seat  model.Seat
}

// BoxOffice is the only entry point to the room's state.  Purchases and
// refunds take the write lock across both the grid and the ledger;
// listings and stats take the read lock.
type BoxOffice struct {
	mu     sync.RWMutex
	grid   *repository.SeatGrid
	ledger *repository.TicketLedger

	secret         string
	events         EventPublisher
	publishTimeout time.Duration
	log            logrus.FieldLogger
}

// NewBoxOffice wires a box office around grid and ledger.  statsSecret
// guards Stats.  events may be nil, in which case nothing is published;
// a nil log discards all output.
func NewBoxOffice(grid *repository.SeatGrid, ledger *repository.TicketLedger, statsSecret string, events EventPublisher, log logrus.FieldLogger) *BoxOffice {
	if grid == nil || ledger == nil {
		panic("nil repository passed to NewBoxOffice")
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &BoxOffice{
		grid:   grid,
		ledger: ledger,
		secret: statsSecret,
		events: events,
		log:    log,

		publishTimeout: publishTimeout,
	}
}

// Seats lists every seat of the room.
func (b *BoxOffice) Seats() []model.Seat {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid.All()
}

// Purchase sells the seat at (row, column).  It fails with
// repository.ErrOutOfRange or repository.ErrAlreadySold.  The new token
// replaces any previously held one.
func (b *BoxOffice) Purchase(ctx context.Context, row, column int) (Purchase, error) {
	p, err := b.purchase(row, column)
	if err != nil {
		return Purchase{}, err
	}
	b.log.WithFields(logrus.Fields{"row": row, "column": column, "price": p.Seat.Price}).Info("ticket purchased")
	b.publish(ctx, queue.TicketPurchased, p.Token, p.Seat)
	return p, nil
}

func (b *BoxOffice) purchase(row, column int) (Purchase, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.grid.Find(row, column); err != nil {
		return Purchase{}, err
	}
	seat, err := b.grid.MarkOccupied(row, column)
	if err != nil {
		return Purchase{}, err
	}
	tok, err := b.ledger.Record(seat)
	if err != nil {
		// No token could be minted; give the seat back.
		_, _ = b.grid.MarkFree(row, column)
		return Purchase{}, err
	}
	return Purchase{Token: tok, Seat: seat}, nil
}

// Refund returns the ticket identified by token and frees its seat.
// Anything other than the currently held token, including text that is
// not a UUID at all, fails with repository.ErrInvalidToken.
func (b *BoxOffice) Refund(ctx context.Context, token string) (model.Seat, error) {
	tok, err := uuid.Parse(token)
	if err != nil {
		return model.Seat{}, repository.ErrInvalidToken
	}
	seat, err := b.refund(tok)
	if err != nil {
		return model.Seat{}, err
	}
	b.log.WithFields(logrus.Fields{"row": seat.Row, "column": seat.Column, "price": seat.Price}).Info("ticket returned")
	b.publish(ctx, queue.TicketReturned, tok, seat)
	return seat, nil
}

func (b *BoxOffice) refund(tok uuid.UUID) (model.Seat, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	held, err := b.ledger.Redeem(tok)
	if err != nil {
		return model.Seat{}, err
	}
	return b.grid.MarkFree(held.Row, held.Column)
}

// Stats reports income and occupancy when password matches the
// configured secret, and ErrUnauthorized otherwise.  The comparison is
// plain string equality.
func (b *BoxOffice) Stats(password string) (model.Stats, error) {
	if password == "" || password != b.secret {
		b.log.Warn("stats requested with wrong password")
		return model.Stats{}, ErrUnauthorized
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid.Stats(), nil
}

// publish hands the event to the publisher outside the lock.  Failures
// are logged and never undo the sale.
func (b *BoxOffice) publish(ctx context.Context, typ string, tok uuid.UUID, seat model.Seat) {
	if b.events == nil {
		return
	}
	ev := queue.TicketEvent{
		Type:       typ,
		Token:      tok.String(),
		Row:        seat.Row,
		Column:     seat.Column,
		Price:      seat.Price,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.publishTimeout)
	defer cancel()
	if err := b.events.Publish(ctx, ev); err != nil {
		b.log.WithError(err).WithField("type", typ).Warn("publish ticket event failed")
	}
}
