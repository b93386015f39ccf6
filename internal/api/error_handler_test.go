package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/camaleon/crm-api/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "invalid input",
			err:      fmt.Errorf("%w: name required", domain.ErrInvalidInput),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "invalid input: name required",
		},
		{
			name:     "contact not found",
			err:      domain.ErrContactNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  "contact not found",
		},
		{
			name:     "wrong credential",
			err:      domain.ErrWrongCredential,
			wantCode: http.StatusForbidden,
			wantMsg:  "wrong credential",
		},
		{
			// Only the wrong-credential outcome gets a 403; any other invite
			// failure is a plain 500 with a distinguishable message.
			name:     "verifier unavailable",
			err:      fmt.Errorf("%w: timeout", domain.ErrVerifierUnavailable),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "credential verifier unavailable",
		},
		{
			name:     "invite failed",
			err:      fmt.Errorf("%w: smtp down", domain.ErrInviteFailed),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "invitation failed",
		},
		{
			name:     "forbidden",
			err:      domain.ErrForbidden,
			wantCode: http.StatusForbidden,
			wantMsg:  "access forbidden",
		},
		{
			name:     "duplicate user",
			err:      domain.ErrUserExists,
			wantCode: http.StatusConflict,
			wantMsg:  "user already exists",
		},
		{
			name:     "echo error passes through",
			err:      echo.NewHTTPError(http.StatusTeapot, "short and stout"),
			wantCode: http.StatusTeapot,
			wantMsg:  "short and stout",
		},
		{
			name:     "unknown error is opaque",
			err:      errors.New("pq: deadlock detected"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tc.wantCode)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.wantMsg {
				t.Errorf("message = %q, want %q", resp["error"], tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusAccepted)

	// Once the response is committed the handler must not write again.
	handler(errors.New("late failure"), c)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("committed response overwritten: %d", rec.Code)
	}
}
