// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Ticket event types.
const (
	TicketPurchased = "purchased"
	TicketReturned  = "returned"
)

// TicketEvent is published whenever a ticket is bought or returned.  It
// carries enough information for downstream consumers to log or audit
// the sale without asking the service.
type TicketEvent struct {
	Type       string `json:"type"`
	Token      string `json:"token"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	Price      int    `json:"price"`
	OccurredAt string `json:"occurred_at"`
}
