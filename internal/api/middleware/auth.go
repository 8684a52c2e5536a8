package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/retroportal/games-api/internal/core/domain"
)

// userContextKey is where the resolved account is stored on the echo context.
const userContextKey = "user"

// userLoader resolves a user id from a verified token into a full account.
// Satisfied by ports.UserRepository.
type userLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the bearer token and loads the caller's account into the
// request context. The account is fetched per request so role changes take
// effect immediately rather than at token expiry.
func Auth(jwtSecret string, users userLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			userID, err := verifyToken(token, jwtSecret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves the caller when a valid token is present but never
// fails the request: an invalid or expired token degrades to guest.
func OptionalAuth(jwtSecret string, users userLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			userID, err := verifyToken(token, jwtSecret)
			if err != nil {
				return next(c)
			}

			if user, err := users.FindByID(c.Request().Context(), userID); err == nil {
				c.Set(userContextKey, user)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the account resolved by Auth or OptionalAuth, or nil
// for unauthenticated requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func verifyToken(token, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return "", err
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return userID, nil
}
