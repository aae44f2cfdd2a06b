package repository

import (
	"github.com/google/uuid"

	"github.com/iliyamo/cinema-room-service/internal/model"
)

// TicketLedger remembers the most recent purchase only.  A new purchase
// replaces the held record even when the previous ticket was never
// returned; that earlier token can then no longer be redeemed.  The
// zero value is an empty ledger.  TicketLedger is not safe for
// concurrent use.
type TicketLedger struct {
	token uuid.UUID  // uuid.Nil while empty
	seat  model.Seat // seat the held token was issued for
}

// NewTicketLedger returns an empty ledger.
func NewTicketLedger() *TicketLedger { return &TicketLedger{} }

// Record mints a fresh random token for seat and stores the pair,
// overwriting whatever was held before.
func (l *TicketLedger) Record(seat model.Seat) (uuid.UUID, error) {
	tok, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}
	l.token = tok
	l.seat = seat
	return tok, nil
}

// Redeem validates token against the held record.  On a match the
// ledger becomes empty and the seat the token was issued for is
// returned; the caller is responsible for freeing it in the grid.
func (l *TicketLedger) Redeem(token uuid.UUID) (model.Seat, error) {
	if l.token == uuid.Nil || token != l.token {
		return model.Seat{}, ErrInvalidToken
	}
	seat := l.seat
	l.token = uuid.Nil
	return seat, nil
}

// Held reports the current record.  ok is false when the ledger is
// empty.
func (l *TicketLedger) Held() (token uuid.UUID, seat model.Seat, ok bool) {
	if l.token == uuid.Nil {
		return uuid.Nil, model.Seat{}, false
	}
	return l.token, l.seat, true
}
