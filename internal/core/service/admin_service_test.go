package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/retroportal/games-api/internal/core/domain"
)

func newTestAdminService(users *stubUserRepo, games *stubGameRepo) *AdminService {
	return NewAdminService(users, games, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, email string, role domain.Role, lastLogin time.Time) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    lastLogin,
		LastLogin:    lastLogin,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func TestAdminService_CreateAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubGameRepo())

	admin, err := svc.CreateAdmin(context.Background(), "Admin@Example.com", "abc123", "abc123")
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if admin.Email != "admin@example.com" {
		t.Fatalf("email not normalised: %s", admin.Email)
	}
	if admin.PasswordHash == "abc123" {
		t.Fatal("password stored in plain text")
	}
}

func TestAdminService_CreateAdmin_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubGameRepo())

	if _, err := svc.CreateAdmin(context.Background(), "admin@example.com", "abc123", "abc123"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateAdmin(context.Background(), "admin@example.com", "other1", "other1")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAdminService_CreateAdmin_Validation(t *testing.T) {
	svc := newTestAdminService(newStubUserRepo(), newStubGameRepo())

	_, err := svc.CreateAdmin(context.Background(), "admin@example.com", "abc12", "abc12")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for short password, got %v", err)
	}

	_, err = svc.CreateAdmin(context.Background(), "admin@example.com", "abc123", "abc124")
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for mismatch, got %v", err)
	}
}

func TestAdminService_DeleteAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubGameRepo())

	admin := seedUser(t, users, "admin@example.com", domain.RoleAdmin, time.Now())

	if err := svc.DeleteAdmin(context.Background(), admin.ID); err != nil {
		t.Fatalf("DeleteAdmin returned error: %v", err)
	}
	if _, err := users.FindByID(context.Background(), admin.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatal("admin still present after delete")
	}
}

func TestAdminService_DeleteAdmin_NotFound(t *testing.T) {
	svc := newTestAdminService(newStubUserRepo(), newStubGameRepo())

	if err := svc.DeleteAdmin(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_DeleteAdmin_RefusesOwner(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubGameRepo())

	owner := seedUser(t, users, "owner@example.com", domain.RoleOwner, time.Now())

	if err := svc.DeleteAdmin(context.Background(), owner.ID); !errors.Is(err, domain.ErrNotAdminAccount) {
		t.Fatalf("expected ErrNotAdminAccount, got %v", err)
	}
	if _, err := users.FindByID(context.Background(), owner.ID); err != nil {
		t.Fatal("owner account must survive")
	}
}

func TestAdminService_Stats(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := newTestAdminService(users, games)

	seedUser(t, users, "owner@example.com", domain.RoleOwner, time.Now())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedUser(t, users, string(rune('a'+i))+"@example.com", domain.RoleAdmin, base.AddDate(0, 0, i))
	}
	for _, name := range []string{"Contra", "Tetris"} {
		if _, err := games.Create(context.Background(), &domain.Game{Name: name}); err != nil {
			t.Fatalf("seed game: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalAdmins != 7 {
		t.Fatalf("expected 7 admins, got %d", stats.TotalAdmins)
	}
	if stats.TotalGames != 2 {
		t.Fatalf("expected 2 games, got %d", stats.TotalGames)
	}
	if len(stats.RecentAdmins) != 5 {
		t.Fatalf("expected 5 recent admins, got %d", len(stats.RecentAdmins))
	}
	for i := 1; i < len(stats.RecentAdmins); i++ {
		if stats.RecentAdmins[i].LastLogin.After(stats.RecentAdmins[i-1].LastLogin) {
			t.Fatal("recent admins not ordered by last login")
		}
	}
}
