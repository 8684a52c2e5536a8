package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

const recentAdminsLimit = 5

// AdminService implements the owner-only account management operations.
type AdminService struct {
	users  ports.UserRepository
	games  ports.GameRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, games ports.GameRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, games: games, logger: logger}
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleAdmin)
}

func (s *AdminService) CreateAdmin(ctx context.Context, email, password, confirmPassword string) (*domain.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password, confirmPassword); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		LastLogin:    now,
	}

	created, err := s.users.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("admin account created")
	return created, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	// The owner account is never deletable through this path.
	if user.Role != domain.RoleAdmin {
		return domain.ErrNotAdminAccount
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("admin account deleted")
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	totalAdmins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}

	totalGames, err := s.games.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count games: %w", err)
	}

	recent, err := s.users.RecentByRole(ctx, domain.RoleAdmin, recentAdminsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent admins: %w", err)
	}

	return &ports.AdminStats{
		TotalAdmins:  totalAdmins,
		TotalGames:   totalGames,
		RecentAdmins: recent,
	}, nil
}
