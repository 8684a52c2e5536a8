package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 1000
)

// GameService implements catalog reads and the admin-gated mutations.
type GameService struct {
	repo   ports.GameRepository
	logger zerolog.Logger
	// now is swappable in tests so "future release date" is deterministic.
	now func() time.Time
}

func NewGameService(repo ports.GameRepository, logger zerolog.Logger) *GameService {
	return &GameService{repo: repo, logger: logger, now: time.Now}
}

// List validates the query parameters, builds a conjunctive filter from the
// provided ones only, and returns the requested page with its metadata.
func (s *GameService) List(ctx context.Context, input ports.ListGamesInput) (*ports.ListGamesResult, error) {
	page := input.Page
	if page == 0 {
		page = defaultPage
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	if err := s.validateListInput(input, page, limit); err != nil {
		return nil, err
	}

	filter := ports.ListGamesFilter{
		Search:      strings.TrimSpace(input.Search),
		Genre:       input.Genre,
		Multiplayer: input.Multiplayer,
		Page:        page,
		Limit:       limit,
	}
	if input.YearFrom != nil {
		filter.YearFrom = *input.YearFrom
	}
	if input.YearTo != nil {
		filter.YearTo = *input.YearTo
	}

	games, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	skip := (page - 1) * limit

	return &ports.ListGamesResult{
		Games: games,
		Pagination: ports.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalGames:  total,
			HasNextPage: int64(skip+len(games)) < total,
			HasPrevPage: page > 1,
		},
	}, nil
}

func (s *GameService) validateListInput(input ports.ListGamesInput, page, limit int) error {
	currentYear := s.now().UTC().Year()
	var msgs []string

	for _, year := range []*int{input.YearFrom, input.YearTo} {
		if year != nil && (*year < domain.MinCatalogYear || *year > currentYear) {
			msgs = append(msgs, "Year must be between 1970 and current year")
		}
	}
	if page < 1 {
		msgs = append(msgs, "Page must be a positive integer")
	}
	if limit < 1 || limit > maxLimit {
		msgs = append(msgs, fmt.Sprintf("Limit must be between 1 and %d", maxLimit))
	}

	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GameService) Create(ctx context.Context, input ports.CreateGameInput, actorID string) (*domain.Game, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	if err := validateGameFields(gameFieldSet{
		name:        &input.Name,
		genre:       &input.Genre,
		platforms:   input.Platforms,
		hasPlatform: true,
		description: &input.Description,
		imageURL:    &input.ImageURL,
		rating:      input.Rating,
		hasRating:   input.Rating != nil,
	}); err != nil {
		return nil, err
	}
	if input.ReleaseDate.After(s.now()) {
		return nil, domain.ErrFutureReleaseDate
	}

	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrDuplicateGameName
	} else if !errors.Is(err, domain.ErrGameNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	game := &domain.Game{
		Name:           input.Name,
		Genre:          input.Genre,
		Platforms:      input.Platforms,
		ReleaseDate:    input.ReleaseDate,
		HasMultiplayer: input.HasMultiplayer,
		Description:    input.Description,
		ImageURL:       strings.TrimSpace(input.ImageURL),
		Rating:         input.Rating,
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, game)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("game_id", created.ID).Str("name", created.Name).Str("created_by", actorID).Msg("game created")
	return created, nil
}

func (s *GameService) Update(ctx context.Context, id string, input ports.UpdateGameInput, actorID string) (*domain.Game, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validateGameFields(gameFieldSet{
		name:        input.Name,
		genre:       input.Genre,
		platforms:   input.Platforms,
		hasPlatform: input.Platforms != nil,
		description: input.Description,
		imageURL:    input.ImageURL,
		rating:      input.Rating,
		hasRating:   input.Rating != nil,
	}); err != nil {
		return nil, err
	}
	if input.ReleaseDate != nil && input.ReleaseDate.After(s.now()) {
		return nil, domain.ErrFutureReleaseDate
	}

	// Duplicate check only when the name actually changes.
	if input.Name != nil && *input.Name != game.Name {
		existing, err := s.repo.FindByName(ctx, *input.Name)
		if err == nil && existing.ID != game.ID {
			return nil, domain.ErrDuplicateGameName
		}
		if err != nil && !errors.Is(err, domain.ErrGameNotFound) {
			return nil, err
		}
	}

	applyGamePatch(game, input)
	game.UpdatedBy = actorID
	game.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, game)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("game_id", updated.ID).Str("updated_by", actorID).Msg("game updated")
	return updated, nil
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("game_id", id).Msg("game deleted")
	return nil
}

// FilterOptions returns the closed enumerations plus the release-year span of
// the catalog, defaulting to [1970, current year] when the catalog is empty.
func (s *GameService) FilterOptions(ctx context.Context) (*ports.FilterOptions, error) {
	min, max, ok, err := s.repo.YearRange(ctx)
	if err != nil {
		return nil, fmt.Errorf("year range: %w", err)
	}
	if !ok {
		min, max = domain.MinCatalogYear, s.now().UTC().Year()
	}

	return &ports.FilterOptions{
		Genres:    domain.Genres,
		Platforms: domain.Platforms,
		YearRange: ports.YearRange{Min: min, Max: max},
	}, nil
}

// gameFieldSet is the subset of game fields present in a payload. Nil
// pointers denote absent fields and are skipped, which lets Create and
// Update share one validation path.
type gameFieldSet struct {
	name        *string
	genre       *string
	platforms   []string
	hasPlatform bool
	description *string
	imageURL    *string
	rating      *float64
	hasRating   bool
}

func validateGameFields(f gameFieldSet) error {
	var msgs []string

	if f.name != nil && len(*f.name) < domain.MinNameLength {
		msgs = append(msgs, "Game name must be at least 2 characters long")
	}
	if f.genre != nil && !domain.ValidGenre(*f.genre) {
		msgs = append(msgs, "Invalid genre")
	}
	if f.hasPlatform {
		if len(f.platforms) == 0 {
			msgs = append(msgs, "At least one platform must be selected")
		}
		for _, p := range f.platforms {
			if !domain.ValidPlatform(p) {
				msgs = append(msgs, "Invalid platform")
				break
			}
		}
	}
	if f.description != nil && len(*f.description) > domain.MaxDescriptionLength {
		msgs = append(msgs, "Description cannot exceed 500 characters")
	}
	if f.imageURL != nil && !domain.ValidImageURL(*f.imageURL) {
		msgs = append(msgs, "Invalid image URL")
	}
	if f.hasRating && (*f.rating < 0 || *f.rating > 10) {
		msgs = append(msgs, "Rating must be between 0 and 10")
	}

	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

func applyGamePatch(game *domain.Game, input ports.UpdateGameInput) {
	if input.Name != nil {
		game.Name = *input.Name
	}
	if input.Genre != nil {
		game.Genre = *input.Genre
	}
	if input.Platforms != nil {
		game.Platforms = input.Platforms
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = *input.ReleaseDate
	}
	if input.HasMultiplayer != nil {
		game.HasMultiplayer = *input.HasMultiplayer
	}
	if input.Description != nil {
		game.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		game.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Rating != nil {
		game.Rating = input.Rating
	}
}
