package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retroportal/games-api/internal/api/metrics"
	"github.com/retroportal/games-api/internal/api/middleware"
	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

// GameHandler handles HTTP requests for the game catalog.
type GameHandler struct {
	service ports.GameService
}

func NewGameHandler(service ports.GameService) *GameHandler {
	return &GameHandler{service: service}
}

// List handles GET /api/games.
//
// @Summary      List games with filtering and pagination
// @Tags         games
// @Produce      json
// @Param        search       query     string  false  "Case-insensitive name substring"
// @Param        genre        query     string  false  "Exact genre match"
// @Param        yearFrom     query     int     false  "Earliest release year (inclusive)"
// @Param        yearTo       query     int     false  "Latest release year (inclusive)"
// @Param        multiplayer  query     bool    false  "Multiplayer flag"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 12, max 1000)"
// @Success      200          {object}  listGamesResponse
// @Failure      400          {object}  errorResponse
// @Router       /api/games [get]
func (h *GameHandler) List(c echo.Context) error {
	input, err := parseListQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), input)
	if err != nil {
		return err
	}

	games := result.Games
	if games == nil {
		// The SPA iterates the list unconditionally; an empty page must
		// serialize as [] rather than null.
		games = []*domain.Game{}
	}

	return c.JSON(http.StatusOK, listGamesResponse{
		Games:      games,
		Pagination: result.Pagination,
	})
}

// Get handles GET /api/games/:id.
//
// @Summary      Get a game by id
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game id"
// @Success      200  {object}  gameResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	game, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gameResponse{Game: game})
}

// Create handles POST /api/games.
//
// @Summary      Add a game to the catalog
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGameRequest  true  "Game details"
// @Success      201   {object}  gameMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/games [post]
func (h *GameHandler) Create(c echo.Context) error {
	var req createGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return domain.NewValidationError("Invalid release date")
	}

	actor := middleware.CurrentUser(c)
	game, err := h.service.Create(c.Request().Context(), ports.CreateGameInput{
		Name:           req.Name,
		Genre:          req.Genre,
		Platforms:      req.Platforms,
		ReleaseDate:    releaseDate,
		HasMultiplayer: *req.HasMultiplayer,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Rating:         req.Rating,
	}, actor.ID)
	if err != nil {
		return err
	}

	metrics.GamesCreatedTotal.WithLabelValues(game.Genre).Inc()

	return c.JSON(http.StatusCreated, gameMessageResponse{
		Message: "Game created successfully",
		Game:    game,
	})
}

// Update handles PUT /api/games/:id.
//
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Game id"
// @Param        body  body      updateGameRequest  true  "Fields to change"
// @Success      200   {object}  gameMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	var req updateGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	input := ports.UpdateGameInput{
		Name:           req.Name,
		Genre:          req.Genre,
		Platforms:      req.Platforms,
		HasMultiplayer: req.HasMultiplayer,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Rating:         req.Rating,
	}
	if req.ReleaseDate != nil {
		releaseDate, err := parseReleaseDate(*req.ReleaseDate)
		if err != nil {
			return domain.NewValidationError("Invalid release date")
		}
		input.ReleaseDate = &releaseDate
	}

	actor := middleware.CurrentUser(c)
	game, err := h.service.Update(c.Request().Context(), c.Param("id"), input, actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, gameMessageResponse{
		Message: "Game updated successfully",
		Game:    game,
	})
}

// Delete handles DELETE /api/games/:id.
//
// @Summary      Remove a game from the catalog
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Game id"
// @Success      200  {object}  gameMessageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.GamesDeletedTotal.Inc()

	return c.JSON(http.StatusOK, gameMessageResponse{
		Message: "Game deleted successfully",
	})
}

// FilterOptions handles GET /api/games/filters/options.
//
// @Summary      Filter controls metadata
// @Tags         games
// @Produce      json
// @Success      200  {object}  ports.FilterOptions
// @Router       /api/games/filters/options [get]
func (h *GameHandler) FilterOptions(c echo.Context) error {
	options, err := h.service.FilterOptions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, options)
}

// parseListQuery turns the raw query string into a ListGamesInput. Range and
// bound checks happen in the service; only type errors are rejected here.
func parseListQuery(c echo.Context) (ports.ListGamesInput, error) {
	input := ports.ListGamesInput{
		Search: c.QueryParam("search"),
		Genre:  c.QueryParam("genre"),
	}

	var msgs []string
	parseInt := func(name, message string) int {
		raw := c.QueryParam(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			msgs = append(msgs, message)
			return 0
		}
		return n
	}
	// Years keep their presence: a provided value is range checked by the
	// service even when it parses to zero.
	parseYear := func(name string) *int {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			msgs = append(msgs, "Year must be between 1970 and current year")
			return nil
		}
		return &n
	}

	input.YearFrom = parseYear("yearFrom")
	input.YearTo = parseYear("yearTo")
	input.Page = parseInt("page", "Page must be a positive integer")
	input.Limit = parseInt("limit", "Limit must be between 1 and 1000")

	switch raw := c.QueryParam("multiplayer"); raw {
	case "":
	case "true", "false":
		multiplayer := raw == "true"
		input.Multiplayer = &multiplayer
	default:
		msgs = append(msgs, "Multiplayer must be true or false")
	}

	if len(msgs) > 0 {
		return ports.ListGamesInput{}, domain.NewValidationError(msgs...)
	}
	return input, nil
}
