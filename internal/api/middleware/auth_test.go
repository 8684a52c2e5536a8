package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/retroportal/games-api/internal/core/domain"
)

type stubUserLoader struct {
	users map[string]*domain.User
}

func (s *stubUserLoader) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func signToken(t *testing.T, secret, userID string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthContext(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	loader := &stubUserLoader{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "admin@example.com", Role: domain.RoleAdmin},
	}}
	token := signToken(t, "secret", "user-1", time.Now().Add(time.Hour))
	c, _ := newAuthContext(token)

	called := false
	handler := Auth("secret", loader)(func(c echo.Context) error {
		called = true
		user := CurrentUser(c)
		if user == nil || user.ID != "user-1" || user.Role != domain.RoleAdmin {
			t.Fatalf("unexpected user in context: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	c, _ := newAuthContext("")

	err := Auth("secret", &stubUserLoader{})(func(echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Access token required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, "secret", "user-1", time.Now().Add(-time.Hour))
	c, _ := newAuthContext(token)

	err := Auth("secret", &stubUserLoader{})(func(echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Token expired" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_BadSignature(t *testing.T) {
	token := signToken(t, "other-secret", "user-1", time.Now().Add(time.Hour))
	c, _ := newAuthContext(token)

	err := Auth("secret", &stubUserLoader{})(func(echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized || he.Message != "Invalid token" {
		t.Fatalf("expected 401 invalid token, got %v", err)
	}
}

func TestAuth_UnknownUser(t *testing.T) {
	token := signToken(t, "secret", "ghost", time.Now().Add(time.Hour))
	c, _ := newAuthContext(token)

	err := Auth("secret", &stubUserLoader{users: map[string]*domain.User{}})(func(echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestOptionalAuth_InvalidTokenDegradesToGuest(t *testing.T) {
	c, _ := newAuthContext("garbage")

	called := false
	handler := OptionalAuth("secret", &stubUserLoader{})(func(c echo.Context) error {
		called = true
		if CurrentUser(c) != nil {
			t.Fatal("expected no user for invalid token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("optional auth must not fail the request: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestOptionalAuth_ValidTokenResolvesUser(t *testing.T) {
	loader := &stubUserLoader{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Role: domain.RoleOwner},
	}}
	token := signToken(t, "secret", "user-1", time.Now().Add(time.Hour))
	c, _ := newAuthContext(token)

	handler := OptionalAuth("secret", loader)(func(c echo.Context) error {
		if user := CurrentUser(c); user == nil || user.ID != "user-1" {
			t.Fatalf("expected resolved user, got %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
