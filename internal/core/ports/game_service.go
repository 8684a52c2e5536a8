package ports

import (
	"context"
	"time"

	"github.com/retroportal/games-api/internal/core/domain"
)

// ListGamesInput carries the raw list parameters as received from the API.
// The service validates them before building a repository filter.
type ListGamesInput struct {
	Search      string
	Genre       string
	YearFrom    *int  // nil = unset; any provided value is range checked
	YearTo      *int  // nil = unset; any provided value is range checked
	Multiplayer *bool // nil = unset
	Page        int   // 0 = default (1)
	Limit       int   // 0 = default (12)
}

// Pagination is the metadata returned alongside every game page.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalGames  int64 `json:"totalGames"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ListGamesResult is returned by List.
type ListGamesResult struct {
	Games      []*domain.Game
	Pagination Pagination
}

// CreateGameInput carries all data needed to create a catalog entry.
type CreateGameInput struct {
	Name           string
	Genre          string
	Platforms      []string
	ReleaseDate    time.Time
	HasMultiplayer bool
	Description    string
	ImageURL       string
	Rating         *float64
}

// UpdateGameInput is a partial payload; nil fields are left untouched.
type UpdateGameInput struct {
	Name           *string
	Genre          *string
	Platforms      []string
	ReleaseDate    *time.Time
	HasMultiplayer *bool
	Description    *string
	ImageURL       *string
	Rating         *float64
}

// YearRange bounds the release years present in the catalog.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions is the data the frontend needs to render its filter controls.
type FilterOptions struct {
	Genres    []string  `json:"genres"`
	Platforms []string  `json:"platforms"`
	YearRange YearRange `json:"yearRange"`
}

// GameService defines use-case operations on the game catalog.
type GameService interface {
	List(ctx context.Context, input ListGamesInput) (*ListGamesResult, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	// Create validates input, rejects duplicate names and future release
	// dates, and stamps the acting user as creator.
	Create(ctx context.Context, input CreateGameInput, actorID string) (*domain.Game, error)
	// Update applies a partial payload, re-validating every field present,
	// and stamps the acting user as updater.
	Update(ctx context.Context, id string, input UpdateGameInput, actorID string) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	FilterOptions(ctx context.Context) (*FilterOptions, error)
}
