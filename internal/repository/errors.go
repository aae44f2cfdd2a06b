// Package repository holds the state of the auditorium: the seat grid,
// the single-slot ticket ledger and the optional audit journal.  The
// sentinel errors below let higher layers such as the service and the
// HTTP handlers distinguish between the failure scenarios without
// inspecting error text.
package repository

import "errors"

// ErrOutOfRange is returned when a row or column lies outside the
// room.  Handlers should translate this into an HTTP 400 response.
var ErrOutOfRange = errors.New("seat coordinates out of range")

// ErrAlreadySold is returned when a purchase targets a seat that is
// already occupied.  Handlers should translate this into an HTTP 400
// response.
var ErrAlreadySold = errors.New("seat already sold")

// ErrInvalidToken is returned when a refund presents a token that is
// not the one currently held by the ledger.
var ErrInvalidToken = errors.New("invalid ticket token")
