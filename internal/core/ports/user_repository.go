package ports

import (
	"context"
	"time"

	"github.com/retroportal/games-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Uniqueness of email is enforced by the store's unique index; Create maps
// index violations to domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListByRole returns all accounts with the given role, newest first.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// RecentByRole returns up to limit accounts with the given role,
	// ordered by most recent login.
	RecentByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	RoleExists(ctx context.Context, role domain.Role) (bool, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
