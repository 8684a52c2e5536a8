package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Genres is the closed enumeration of accepted game genres.
var Genres = []string{
	"Action",
	"Adventure",
	"RPG",
	"Strategy",
	"Simulation",
	"Sports",
	"Racing",
	"Puzzle",
	"Platformer",
	"Shooter",
	"Fighting",
	"Arcade",
	"Educational",
	"Other",
}

// Platforms is the closed enumeration of accepted platforms.
var Platforms = []string{
	"NES",
	"SNES",
	"N64",
	"GameCube",
	"Wii",
	"Game Boy",
	"Game Boy Color",
	"Game Boy Advance",
	"DS",
	"3DS",
	"Sega Genesis",
	"Sega Saturn",
	"Sega Dreamcast",
	"PlayStation",
	"PlayStation 2",
	"PlayStation 3",
	"PSP",
	"Xbox",
	"Xbox 360",
	"PC",
	"Arcade",
	"Atari 2600",
	"Atari 7800",
	"Commodore 64",
	"Amiga",
	"Other",
}

var genreSet = toSet(Genres)
var platformSet = toSet(Platforms)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidGenre reports whether g is a known genre.
func ValidGenre(g string) bool {
	_, ok := genreSet[g]
	return ok
}

// ValidPlatform reports whether p is a known platform.
func ValidPlatform(p string) bool {
	_, ok := platformSet[p]
	return ok
}

// imageURLPattern accepts any http(s) URL; wikimedia/wikipedia links are
// additionally allowed even when they carry query strings or odd paths.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+`)

// ValidImageURL reports whether url is acceptable as a cover image link.
// Empty values are allowed since the field is optional.
func ValidImageURL(url string) bool {
	if strings.TrimSpace(url) == "" {
		return true
	}
	return imageURLPattern.MatchString(url) ||
		strings.Contains(url, "wikimedia.org") ||
		strings.Contains(url, "wikipedia.org")
}

// MinNameLength is the minimum accepted game name length.
const MinNameLength = 2

// MaxDescriptionLength caps the free-text description.
const MaxDescriptionLength = 500

// MinCatalogYear is the earliest release year the catalog accepts.
const MinCatalogYear = 1970

var ErrGameNotFound = errors.New("game not found")
var ErrDuplicateGameName = errors.New("game name already exists")
var ErrFutureReleaseDate = errors.New("release date cannot be in the future")

// Game is a catalog entry for a retro video game.
type Game struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Genre          string    `json:"genre"`
	Platforms      []string  `json:"platforms"`
	ReleaseDate    time.Time `json:"releaseDate"`
	HasMultiplayer bool      `json:"hasMultiplayer"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Rating         *float64  `json:"rating"`
	CreatedBy      string    `json:"createdBy"`
	UpdatedBy      string    `json:"updatedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ReleaseYear returns the year component of the release date.
func (g *Game) ReleaseYear() int {
	return g.ReleaseDate.Year()
}
