package model

// Stats aggregates sales over the whole room.
//
// Fields:
//  CurrentIncome        – sum of prices of all sold seats.
//  AvailableSeats       – number of free seats.
//  PurchasedTickets     – number of sold seats.
type Stats struct {
	CurrentIncome    int `json:"current_income"`
	AvailableSeats   int `json:"number_of_available_seats"`
	PurchasedTickets int `json:"number_of_purchased_tickets"`
}
