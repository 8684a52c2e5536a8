package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 12

// AuthService implements login and the one-shot owner registration.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds; the stamp is best effort.
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to stamp last login")
	} else {
		user.LastLogin = now
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}

// Register creates the owner account. Only one owner may ever exist; after
// bootstrap every further call fails with domain.ErrOwnerExists.
func (s *AuthService) Register(ctx context.Context, email, password, confirmPassword string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password, confirmPassword); err != nil {
		return "", nil, err
	}

	exists, err := s.users.RoleExists(ctx, domain.RoleOwner)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, domain.ErrOwnerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	owner := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
		CreatedAt:    now,
		LastLogin:    now,
	}

	created, err := s.users.Create(ctx, owner)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Msg("owner account created")
	return token, created, nil
}

func (s *AuthService) OwnerExists(ctx context.Context) (bool, error) {
	return s.users.RoleExists(ctx, domain.RoleOwner)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validateCredentials collects every field problem so the caller sees all of
// them at once, mirroring the behaviour of the registration form.
func validateCredentials(email, password, confirmPassword string) error {
	var msgs []string
	if !domain.ValidEmail(email) {
		msgs = append(msgs, "Please enter a valid email")
	}
	if len(password) < domain.MinPasswordLength {
		msgs = append(msgs, fmt.Sprintf("Password must be at least %d characters long", domain.MinPasswordLength))
	}
	if password != confirmPassword {
		msgs = append(msgs, "Passwords must match")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
