package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

type stubAdminService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	createFn func(ctx context.Context, email, password, confirmPassword string) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
	statsFn  func(ctx context.Context) (*ports.AdminStats, error)
}

func (s *stubAdminService) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubAdminService) CreateAdmin(ctx context.Context, email, password, confirmPassword string) (*domain.User, error) {
	return s.createFn(ctx, email, password, confirmPassword)
}

func (s *stubAdminService) DeleteAdmin(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubAdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	return s.statsFn(ctx)
}

func TestAdminHandler_List(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "a2", Email: "second@example.com", Role: domain.RoleAdmin},
				{ID: "a1", Email: "first@example.com", Role: domain.RoleAdmin},
			}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/users", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	admins, ok := resp["admins"].([]any)
	if !ok || len(admins) != 2 {
		t.Fatalf("unexpected admins payload: %+v", resp["admins"])
	}
	first, _ := admins[0].(map[string]any)
	if first["email"] != "second@example.com" {
		t.Fatalf("expected newest admin first, got %+v", first)
	}
}

func TestAdminHandler_List_EmptySerializesArray(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return nil, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/users", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	admins, ok := resp["admins"].([]any)
	if !ok {
		t.Fatalf("expected admins to be an array, got %T (%v)", resp["admins"], resp["admins"])
	}
	if len(admins) != 0 {
		t.Fatalf("expected empty array, got %v", admins)
	}
}

func TestAdminHandler_Create_Success(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		createFn: func(ctx context.Context, email, password, confirmPassword string) (*domain.User, error) {
			if email != "new@example.com" || password != "secret1" || confirmPassword != "secret1" {
				t.Fatalf("unexpected args: %s %s %s", email, password, confirmPassword)
			}
			return &domain.User{ID: "a1", Email: email, Role: domain.RoleAdmin, CreatedAt: time.Now()}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/admin/users",
		`{"email":"new@example.com","password":"secret1","confirmPassword":"secret1"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Admin user created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	admin, ok := resp["admin"].(map[string]any)
	if !ok || admin["email"] != "new@example.com" || admin["role"] != "admin" {
		t.Fatalf("unexpected admin payload: %+v", resp["admin"])
	}
}

func TestAdminHandler_Create_DuplicateEmail(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		createFn: func(ctx context.Context, email, password, confirmPassword string) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/api/admin/users",
		`{"email":"dup@example.com","password":"secret1","confirmPassword":"secret1"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAdminHandler_Delete(t *testing.T) {
	deleted := ""
	h := NewAdminHandler(&stubAdminService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	c, rec := newJSONContext(t, http.MethodDelete, "/api/admin/users/a1", "")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "a1" {
		t.Fatalf("expected delete of a1, got %q", deleted)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Admin user deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAdminHandler_Delete_RefusesNonAdmin(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrNotAdminAccount
		},
	})

	c, _ := newJSONContext(t, http.MethodDelete, "/api/admin/users/owner-1", "")
	c.SetParamNames("id")
	c.SetParamValues("owner-1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrNotAdminAccount) {
		t.Fatalf("expected ErrNotAdminAccount, got %v", err)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		statsFn: func(ctx context.Context) (*ports.AdminStats, error) {
			return &ports.AdminStats{
				TotalAdmins: 3,
				TotalGames:  42,
				RecentAdmins: []*domain.User{
					{ID: "a1", Email: "recent@example.com", Role: domain.RoleAdmin},
				},
			}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/stats", "")

	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	stats, ok := resp["stats"].(map[string]any)
	if !ok || stats["totalAdmins"] != float64(3) || stats["totalGames"] != float64(42) {
		t.Fatalf("unexpected stats payload: %+v", resp["stats"])
	}
	recent, ok := resp["recentAdmins"].([]any)
	if !ok || len(recent) != 1 {
		t.Fatalf("unexpected recentAdmins payload: %+v", resp["recentAdmins"])
	}
}

func TestAdminHandler_Stats_NoRecentAdminsSerializesArray(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		statsFn: func(ctx context.Context) (*ports.AdminStats, error) {
			return &ports.AdminStats{TotalAdmins: 0, TotalGames: 0}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/stats", "")

	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["recentAdmins"].([]any); !ok {
		t.Fatalf("expected recentAdmins to be an array, got %T", resp["recentAdmins"])
	}
}
