package handler

import (
	"time"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

// releaseDateLayouts are accepted on input; date-only is what the catalog
// form sends, RFC3339 is what API clients tend to send.
var releaseDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseReleaseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range releaseDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// --- Request types ---

type createGameRequest struct {
	Name           string   `json:"name"           validate:"required"`
	Genre          string   `json:"genre"          validate:"required"`
	Platforms      []string `json:"platforms"      validate:"required,min=1"`
	ReleaseDate    string   `json:"releaseDate"    validate:"required"`
	HasMultiplayer *bool    `json:"hasMultiplayer" validate:"required"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"imageUrl"`
	Rating         *float64 `json:"rating"`
}

// updateGameRequest is a partial payload; absent fields stay untouched.
type updateGameRequest struct {
	Name           *string  `json:"name"`
	Genre          *string  `json:"genre"`
	Platforms      []string `json:"platforms"`
	ReleaseDate    *string  `json:"releaseDate"`
	HasMultiplayer *bool    `json:"hasMultiplayer"`
	Description    *string  `json:"description"`
	ImageURL       *string  `json:"imageUrl"`
	Rating         *float64 `json:"rating"`
}

// --- Response types ---

type gameResponse struct {
	Game *domain.Game `json:"game"`
}

type gameMessageResponse struct {
	Message string       `json:"message"`
	Game    *domain.Game `json:"game,omitempty"`
}

type listGamesResponse struct {
	Games      []*domain.Game   `json:"games"`
	Pagination ports.Pagination `json:"pagination"`
}
