package repository // repository defines data access for seats

import "github.com/iliyamo/cinema-room-service/internal/model"

// SeatGrid owns every seat of the auditorium.  Seats are created once by
// NewSeatGrid and never removed; only their Free flag changes.  SeatGrid
// is not safe for concurrent use: its owner must serialize mutations
// with reads.
type SeatGrid struct {
	seats []model.Seat // row-major, index (row-1)*TotalColumns + (column-1)
}

// NewSeatGrid builds the full grid with row-based prices and every seat
// free.
func NewSeatGrid() *SeatGrid {
	seats := make([]model.Seat, 0, model.TotalRows*model.TotalColumns)
	for row := 1; row <= model.TotalRows; row++ {
		for col := 1; col <= model.TotalColumns; col++ {
			seats = append(seats, model.Seat{
				Row:    row,
				Column: col,
				Price:  model.PriceForRow(row),
				Free:   true,
			})
		}
	}
	return &SeatGrid{seats: seats}
}

// All returns a snapshot of every seat ordered by row then column.  The
// returned slice is a copy and may be retained by the caller.
func (g *SeatGrid) All() []model.Seat {
	out := make([]model.Seat, len(g.seats))
	copy(out, g.seats)
	return out
}

// Find returns the seat at (row, column).  Coordinates are checked
// explicitly so that a bad address is reported as ErrOutOfRange rather
// than surfacing through slice bounds.
func (g *SeatGrid) Find(row, column int) (model.Seat, error) {
	i, err := index(row, column)
	if err != nil {
		return model.Seat{}, err
	}
	return g.seats[i], nil
}

// MarkOccupied flips a free seat to occupied and returns the updated
// seat.  It fails with ErrAlreadySold when the seat is not free.
func (g *SeatGrid) MarkOccupied(row, column int) (model.Seat, error) {
	i, err := index(row, column)
	if err != nil {
		return model.Seat{}, err
	}
	if !g.seats[i].Free {
		return g.seats[i], ErrAlreadySold
	}
	g.seats[i].Free = false
	return g.seats[i], nil
}

// MarkFree sets the seat free regardless of its previous state and
// returns it.
func (g *SeatGrid) MarkFree(row, column int) (model.Seat, error) {
	i, err := index(row, column)
	if err != nil {
		return model.Seat{}, err
	}
	g.seats[i].Free = true
	return g.seats[i], nil
}

// Stats scans the grid once and reports income from sold seats together
// with the free and sold counts.
func (g *SeatGrid) Stats() model.Stats {
	var st model.Stats
	for _, s := range g.seats {
		if s.Free {
			st.AvailableSeats++
			continue
		}
		st.PurchasedTickets++
		st.CurrentIncome += s.Price
	}
	return st
}

func index(row, column int) (int, error) {
	if !model.InRange(row, column) {
		return -1, ErrOutOfRange
	}
	return (row-1)*model.TotalColumns + (column - 1), nil
}
