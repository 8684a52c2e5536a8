package ports

import (
	"context"

	"github.com/retroportal/games-api/internal/core/domain"
)

// AdminStats summarises the portal for the owner dashboard.
type AdminStats struct {
	TotalAdmins  int64
	TotalGames   int64
	RecentAdmins []*domain.User // up to 5, most recent login first
}

// AdminService defines the owner-only account management operations.
type AdminService interface {
	// ListAdmins returns all admin accounts, newest first.
	ListAdmins(ctx context.Context) ([]*domain.User, error)
	CreateAdmin(ctx context.Context, email, password, confirmPassword string) (*domain.User, error)
	// DeleteAdmin removes an admin account. Accounts with any other role
	// are not deletable through this path (domain.ErrNotAdminAccount).
	DeleteAdmin(ctx context.Context, id string) error
	Stats(ctx context.Context) (*AdminStats, error)
}
