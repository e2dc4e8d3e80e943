package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"query validation", domain.QueryError("sortBy", "must be one of: name"), http.StatusBadRequest, "sortBy must be one of: name"},
		{"input validation", domain.InputError("capacity", "must be a non-negative number"), http.StatusBadRequest, "capacity must be a non-negative number"},
		{"project missing", fmt.Errorf("get: %w", domain.ErrProjectNotFound), http.StatusNotFound, "project not found"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"duplicate", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"token", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"upstream", fmt.Errorf("%w: status 500", domain.ErrUpstream), http.StatusBadGateway, "external data source unavailable"},
		{"capacity", fmt.Errorf("project x: %w", domain.ErrInvalidCapacity), http.StatusInternalServerError, "stored project data is invalid"},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_HidesAndLogsUnexpected(t *testing.T) {
	var logs bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.New(&logs))(errors.New("mongo: connection reset"), c)

	if bytes.Contains(rec.Body.Bytes(), []byte("mongo")) {
		t.Fatalf("internal detail leaked to client: %s", rec.Body.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("connection reset")) {
		t.Fatalf("expected the cause to be logged, got %q", logs.String())
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %q", rec.Body.String())
	}
}
