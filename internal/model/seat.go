package model

// Room dimensions.  The auditorium is a fixed 9×9 grid and seats are
// addressed with 1-based (row, column) coordinates.
const (
	TotalRows    = 9
	TotalColumns = 9
)

// Seat prices.  The first FrontRows rows are sold at FrontPrice, every row
// behind them at BackPrice.
const (
	FrontRows  = 4
	FrontPrice = 10
	BackPrice  = 8
)

// Seat describes one seat of the auditorium.  A seat is identified by its
// row and column; its price depends on the row only.  Free is the only
// field that changes after start-up and is never serialized.
//
// Fields:
//  Row    – 1-based row number.
//  Column – 1-based column number.
//  Price  – ticket price for this seat.
//  Free   – whether the seat is still available for purchase.
type Seat struct {
	Row    int  `json:"row"`    // seat row
	Column int  `json:"column"` // seat column
	Price  int  `json:"price"`  // ticket price
	Free   bool `json:"-"`      // availability flag, internal only
}

// PriceForRow returns the ticket price for any seat in the given row.
func PriceForRow(row int) int {
	if row <= FrontRows {
		return FrontPrice
	}
	return BackPrice
}

// InRange reports whether (row, column) addresses a seat of the room.
func InRange(row, column int) bool {
	return row >= 1 && row <= TotalRows && column >= 1 && column <= TotalColumns
}
