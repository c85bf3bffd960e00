package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("doctor id is required"), http.StatusBadRequest},
		{Unauthorized("missing authorization header"), http.StatusUnauthorized},
		{Forbidden("not authorized to update this appointment"), http.StatusForbidden},
		{NotFound("appointment not found"), http.StatusNotFound},
		{Conflict("time slot is already booked"), http.StatusConflict},
		{errors.New("pg: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestStatusWrappedError(t *testing.T) {
	err := fmt.Errorf("booking: %w", Conflict("time slot is already booked"))
	if got := Status(err); got != http.StatusConflict {
		t.Errorf("Status(wrapped) = %d, want %d", got, http.StatusConflict)
	}
	if !IsKind(err, KindConflict) {
		t.Error("IsKind(wrapped, KindConflict) = false, want true")
	}
}

func TestHTTPHidesInternalDetail(t *testing.T) {
	err := HTTP(errors.New("pq: duplicate key value violates unique constraint"))
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("HTTP() = %T, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", he.Code)
	}
	if he.Message != "internal server error" {
		t.Errorf("message = %v, leaked internal detail", he.Message)
	}
}

func TestHTTPKeepsDomainMessage(t *testing.T) {
	err := HTTP(NotFound("doctor not found"))
	he := err.(*echo.HTTPError)
	if he.Code != http.StatusNotFound || he.Message != "doctor not found" {
		t.Errorf("got %d %v, want 404 doctor not found", he.Code, he.Message)
	}
}
