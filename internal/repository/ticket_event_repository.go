package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-room-service/internal/queue"
)

// TicketEventRepo appends ticket events to the ticket_events journal.
// The journal is write-only: seat state is never rebuilt from it.
type TicketEventRepo struct{ DB *sql.DB }

// NewTicketEventRepo returns a journal writing through db.
func NewTicketEventRepo(db *sql.DB) *TicketEventRepo { return &TicketEventRepo{DB: db} }

// EnsureSchema creates the journal table when it does not exist yet.
func (r *TicketEventRepo) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS ticket_events (
	             id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	             event_type  VARCHAR(16)  NOT NULL,
	             token       CHAR(36)     NOT NULL,
	             seat_row    TINYINT UNSIGNED NOT NULL,
	             seat_column TINYINT UNSIGNED NOT NULL,
	             price       INT UNSIGNED NOT NULL,
	             occurred_at DATETIME     NOT NULL,
	             KEY idx_ticket_events_token (token)
	           )`
	if _, err := r.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create ticket_events: %w", err)
	}
	return nil
}

// Write inserts one event row.  It satisfies queue.Sink.
func (r *TicketEventRepo) Write(ctx context.Context, ev queue.TicketEvent) error {
	at, err := time.Parse(time.RFC3339, ev.OccurredAt)
	if err != nil {
		at = time.Now().UTC()
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO ticket_events (event_type, token, seat_row, seat_column, price, occurred_at) VALUES (?,?,?,?,?,?)",
		ev.Type, ev.Token, ev.Row, ev.Column, ev.Price, at.UTC())
	if err != nil {
		return fmt.Errorf("insert ticket event: %w", err)
	}
	return nil
}
