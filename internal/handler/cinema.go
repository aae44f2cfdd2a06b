package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-service/internal/model"
	"github.com/iliyamo/cinema-room-service/internal/service"
)

// seatsResponse is the body of GET /seats.  Every seat is listed whether
// or not it has been sold.
type seatsResponse struct {
	TotalRows      int          `json:"total_rows"`
	TotalColumns   int          `json:"total_columns"`
	AvailableSeats []model.Seat `json:"available_seats"`
}

type purchaseRequest struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type purchaseResponse struct {
	Token  string     `json:"token"`
	Ticket model.Seat `json:"ticket"`
}

type returnRequest struct {
	Token string `json:"token"`
}

type returnResponse struct {
	ReturnedTicket model.Seat `json:"returned_ticket"`
}

// CinemaHandler exposes the box office over HTTP.
type CinemaHandler struct {
	Office *service.BoxOffice
}

// NewCinemaHandler constructs a CinemaHandler and panics on a nil box office.
func NewCinemaHandler(office *service.BoxOffice) *CinemaHandler {
	if office == nil {
		panic("nil box office passed to NewCinemaHandler")
	}
	return &CinemaHandler{Office: office}
}

// GetSeats handles GET /seats.
func (h *CinemaHandler) GetSeats(c echo.Context) error {
	return c.JSON(http.StatusOK, seatsResponse{
		TotalRows:      model.TotalRows,
		TotalColumns:   model.TotalColumns,
		AvailableSeats: h.Office.Seats(),
	})
}

// Purchase handles POST /purchase with a {"row","column"} body.
func (h *CinemaHandler) Purchase(c echo.Context) error {
	var body purchaseRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgBadBody})
	}
	p, err := h.Office.Purchase(c.Request().Context(), body.Row, body.Column)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, purchaseResponse{Token: p.Token.String(), Ticket: p.Seat})
}

// Return handles POST /return with a {"token"} body.
func (h *CinemaHandler) Return(c echo.Context) error {
	var body returnRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgBadBody})
	}
	seat, err := h.Office.Refund(c.Request().Context(), body.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, returnResponse{ReturnedTicket: seat})
}

// Stats handles GET /stats?password=...
func (h *CinemaHandler) Stats(c echo.Context) error {
	st, err := h.Office.Stats(c.QueryParam("password"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
