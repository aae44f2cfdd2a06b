package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-room-service/internal/model"
)

func TestLedgerEmptyRejectsEverything(t *testing.T) {
	l := NewTicketLedger()
	if _, _, ok := l.Held(); ok {
		t.Fatal("new ledger reports a held record")
	}
	for _, tok := range []uuid.UUID{uuid.Nil, uuid.New()} {
		if _, err := l.Redeem(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Redeem(%s) on empty ledger err = %v", tok, err)
		}
	}
}

func TestLedgerRecordAndRedeemOnce(t *testing.T) {
	l := NewTicketLedger()
	seat := model.Seat{Row: 2, Column: 3, Price: 10}
	tok, err := l.Record(seat)
	if err != nil {
		t.Fatal(err)
	}
	if tok == uuid.Nil {
		t.Fatal("minted the sentinel token")
	}
	if held, s, ok := l.Held(); !ok || held != tok || s != seat {
		t.Fatalf("Held() = %s %+v %v", held, s, ok)
	}
	got, err := l.Redeem(tok)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if got != seat {
		t.Fatalf("Redeem returned %+v, want %+v", got, seat)
	}
	if _, err := l.Redeem(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second Redeem err = %v, want ErrInvalidToken", err)
	}
	if _, err := l.Redeem(uuid.Nil); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Redeem(sentinel) err = %v, want ErrInvalidToken", err)
	}
}

func TestLedgerOverwritesPreviousRecord(t *testing.T) {
	l := NewTicketLedger()
	t1, _ := l.Record(model.Seat{Row: 2, Column: 3, Price: 10})
	t2, _ := l.Record(model.Seat{Row: 9, Column: 9, Price: 8})
	if t1 == t2 {
		t.Fatal("two purchases produced the same token")
	}
	if _, err := l.Redeem(t1); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Redeem(orphaned) err = %v, want ErrInvalidToken", err)
	}
	s, err := l.Redeem(t2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Row != 9 || s.Column != 9 {
		t.Fatalf("Redeem returned %+v", s)
	}
}
