package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-service/internal/repository"
	"github.com/iliyamo/cinema-room-service/internal/service"
)

// Client-facing messages for each failure kind.
const (
	msgOutOfRange    = "The number of a row or a column is out of bounds!"
	msgAlreadySold   = "The ticket has been already purchased!"
	msgWrongToken    = "Wrong token!"
	msgWrongPassword = "The password is wrong!"
	msgBadBody       = "invalid request body"
	msgInternal      = "internal error"
)

// writeError maps a box office error to its status code and JSON body.
func writeError(c echo.Context, err error) error {
	status, msg := http.StatusInternalServerError, msgInternal
	switch {
	case errors.Is(err, repository.ErrOutOfRange):
		status, msg = http.StatusBadRequest, msgOutOfRange
	case errors.Is(err, repository.ErrAlreadySold):
		status, msg = http.StatusBadRequest, msgAlreadySold
	case errors.Is(err, repository.ErrInvalidToken):
		status, msg = http.StatusBadRequest, msgWrongToken
	case errors.Is(err, service.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, msgWrongPassword
	}
	return c.JSON(status, echo.Map{"error": msg})
}
