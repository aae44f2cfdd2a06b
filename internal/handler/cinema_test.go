package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-service/internal/repository"
	"github.com/iliyamo/cinema-room-service/internal/service"
)

func newServer() *echo.Echo {
	office := service.NewBoxOffice(repository.NewSeatGrid(), repository.NewTicketLedger(), "super_secret", nil, nil)
	h := NewCinemaHandler(office)
	e := echo.New()
	e.GET("/seats", h.GetSeats)
	e.POST("/purchase", h.Purchase)
	e.POST("/return", h.Return)
	e.GET("/stats", h.Stats)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: body %q is not a JSON object: %v", method, target, rec.Body.String(), err)
	}
	return rec, out
}

func TestGetSeats(t *testing.T) {
	e := newServer()
	_, _ = do(t, e, http.MethodPost, "/purchase", `{"row":1,"column":1}`)

	rec, out := do(t, e, http.MethodGet, "/seats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if out["total_rows"] != float64(9) || out["total_columns"] != float64(9) {
		t.Fatalf("dimensions = %v x %v", out["total_rows"], out["total_columns"])
	}
	seats, _ := out["available_seats"].([]any)
	if len(seats) != 81 {
		t.Fatalf("got %d seats, want 81", len(seats))
	}
	first := seats[0].(map[string]any)
	if len(first) != 3 || first["row"] != float64(1) || first["column"] != float64(1) || first["price"] != float64(10) {
		t.Fatalf("first seat = %v", first)
	}
	last := seats[80].(map[string]any)
	if last["row"] != float64(9) || last["column"] != float64(9) || last["price"] != float64(8) {
		t.Fatalf("last seat = %v", last)
	}
}

func TestPurchaseFlow(t *testing.T) {
	e := newServer()

	rec, out := do(t, e, http.MethodPost, "/purchase", `{"row":3,"column":4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %v", rec.Code, out)
	}
	token, _ := out["token"].(string)
	if len(token) != 36 {
		t.Fatalf("token = %q", token)
	}
	ticket := out["ticket"].(map[string]any)
	if ticket["row"] != float64(3) || ticket["column"] != float64(4) || ticket["price"] != float64(10) {
		t.Fatalf("ticket = %v", ticket)
	}

	rec, out = do(t, e, http.MethodPost, "/purchase", `{"row":3,"column":4}`)
	if rec.Code != http.StatusBadRequest || out["error"] != "The ticket has been already purchased!" {
		t.Fatalf("repeat purchase = %d %v", rec.Code, out)
	}

	rec, out = do(t, e, http.MethodPost, "/return", `{"token":"`+token+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("return status %d body %v", rec.Code, out)
	}
	returned := out["returned_ticket"].(map[string]any)
	if returned["row"] != float64(3) || returned["column"] != float64(4) || returned["price"] != float64(10) {
		t.Fatalf("returned_ticket = %v", returned)
	}

	rec, out = do(t, e, http.MethodPost, "/return", `{"token":"`+token+`"}`)
	if rec.Code != http.StatusBadRequest || out["error"] != "Wrong token!" {
		t.Fatalf("second return = %d %v", rec.Code, out)
	}
}

func TestPurchaseOutOfBounds(t *testing.T) {
	e := newServer()
	for _, body := range []string{`{"row":10,"column":1}`, `{"row":1,"column":0}`, `{"row":-1,"column":-1}`, `{}`} {
		rec, out := do(t, e, http.MethodPost, "/purchase", body)
		if rec.Code != http.StatusBadRequest || out["error"] != "The number of a row or a column is out of bounds!" {
			t.Errorf("%s: %d %v", body, rec.Code, out)
		}
	}
}

func TestMalformedBodies(t *testing.T) {
	e := newServer()
	for _, target := range []string{"/purchase", "/return"} {
		rec, out := do(t, e, http.MethodPost, target, `{"row":`)
		if rec.Code != http.StatusBadRequest || out["error"] != "invalid request body" {
			t.Errorf("%s: %d %v", target, rec.Code, out)
		}
	}
}

func TestReturnUnknownToken(t *testing.T) {
	e := newServer()
	for _, tok := range []string{"00000000-0000-0000-0000-000000000000", "garbage", ""} {
		rec, out := do(t, e, http.MethodPost, "/return", `{"token":"`+tok+`"}`)
		if rec.Code != http.StatusBadRequest || out["error"] != "Wrong token!" {
			t.Errorf("token %q: %d %v", tok, rec.Code, out)
		}
	}
}

func TestStats(t *testing.T) {
	e := newServer()
	for _, target := range []string{"/stats", "/stats?password=nope"} {
		rec, out := do(t, e, http.MethodGet, target, "")
		if rec.Code != http.StatusUnauthorized || out["error"] != "The password is wrong!" {
			t.Errorf("%s: %d %v", target, rec.Code, out)
		}
	}

	_, _ = do(t, e, http.MethodPost, "/purchase", `{"row":5,"column":5}`)
	_, _ = do(t, e, http.MethodPost, "/purchase", `{"row":2,"column":3}`)

	rec, out := do(t, e, http.MethodGet, "/stats?password=super_secret", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if out["current_income"] != float64(18) || out["number_of_available_seats"] != float64(79) || out["number_of_purchased_tickets"] != float64(2) {
		t.Fatalf("stats = %v", out)
	}
}

func TestOrphanedTokenCannotBeReturned(t *testing.T) {
	e := newServer()
	_, first := do(t, e, http.MethodPost, "/purchase", `{"row":2,"column":3}`)
	_, _ = do(t, e, http.MethodPost, "/purchase", `{"row":9,"column":9}`)

	rec, out := do(t, e, http.MethodPost, "/return", `{"token":"`+first["token"].(string)+`"}`)
	if rec.Code != http.StatusBadRequest || out["error"] != "Wrong token!" {
		t.Fatalf("orphaned return = %d %v", rec.Code, out)
	}
	_, stats := do(t, e, http.MethodGet, "/stats?password=super_secret", "")
	if stats["number_of_purchased_tickets"] != float64(2) {
		t.Fatalf("stats = %v", stats)
	}
}
