package ports

import (
	"context"

	"github.com/retroportal/games-api/internal/core/domain"
)

// ListGamesFilter carries the already-validated query parameters for listing
// games. Zero values impose no constraint.
type ListGamesFilter struct {
	Search      string // case-insensitive substring match on name
	Genre       string // exact match
	YearFrom    int    // inclusive lower bound on release year, 0 = unset
	YearTo      int    // inclusive upper bound on release year, 0 = unset
	Multiplayer *bool  // nil = unset
	Page        int    // 1-based
	Limit       int    // rows per page
}

// GameRepository defines persistence operations for the game catalog.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	FindByName(ctx context.Context, name string) (*domain.Game, error)
	// List returns a page of games matching filter, sorted ascending by
	// name, plus the total match count.
	List(ctx context.Context, filter ListGamesFilter) ([]*domain.Game, int64, error)
	Update(ctx context.Context, game *domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// YearRange returns the minimum and maximum release year across the
	// catalog. ok is false when the catalog is empty.
	YearRange(ctx context.Context) (min, max int, ok bool, err error)
	EnsureIndexes(ctx context.Context) error
}
