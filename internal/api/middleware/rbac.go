package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retroportal/games-api/internal/core/domain"
)

// RequireRole enforces role-based access control against the ordered role
// hierarchy (guest < admin < owner). Unauthenticated requests fail with 401
// before the role is even evaluated.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if !user.Role.AtLeast(min) {
				return echo.NewHTTPError(http.StatusForbidden, forbiddenMessage(min))
			}
			return next(c)
		}
	}
}

func forbiddenMessage(min domain.Role) string {
	switch min {
	case domain.RoleOwner:
		return "Owner access required"
	case domain.RoleAdmin:
		return "Admin access required"
	default:
		return "Access denied"
	}
}
