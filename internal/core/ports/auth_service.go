package ports

import (
	"context"

	"github.com/retroportal/games-api/internal/core/domain"
)

// AuthService implements login and the one-shot owner registration.
type AuthService interface {
	// Login verifies credentials and returns a signed bearer token plus the
	// authenticated user. Unknown email and password mismatch are
	// indistinguishable to the caller (domain.ErrInvalidCredentials).
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Register creates the single owner account. It fails with
	// domain.ErrOwnerExists once an owner is present.
	Register(ctx context.Context, email, password, confirmPassword string) (string, *domain.User, error)
	OwnerExists(ctx context.Context) (bool, error)
}
