package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/retroportal/games-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"game not found", domain.ErrGameNotFound, http.StatusNotFound, "Game not found"},
		{"duplicate game", domain.ErrDuplicateGameName, http.StatusBadRequest, "Game with this name already exists."},
		{"future release", domain.ErrFutureReleaseDate, http.StatusBadRequest, "Release date cannot be in the future."},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"owner exists", domain.ErrOwnerExists, http.StatusBadRequest, "Owner account already exists"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "User with this email already exists"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "Admin user not found"},
		{"not an admin", domain.ErrNotAdminAccount, http.StatusBadRequest, "Can only delete admin users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := renderError(t, tt.err)
			if code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
			if resp.Message != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, resp.Message)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	code, resp := renderError(t, domain.NewValidationError(
		"Game name must be at least 2 characters long",
		"Invalid genre",
	))

	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Message != "Validation error" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if len(resp.Errors) != 2 || resp.Errors[1] != "Invalid genre" {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Access token required"))

	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Message != "Access token required" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	code, resp := renderError(t, errors.New("mongo blew up"))

	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "Server error" {
		t.Fatalf("internal detail must not leak: %q", resp.Message)
	}
}
