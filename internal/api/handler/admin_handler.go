package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

// AdminHandler handles the owner-only admin account management routes.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type createAdminRequest struct {
	Email           string `json:"email"           validate:"required"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type listAdminsResponse struct {
	Admins []*domain.User `json:"admins"`
}

type createAdminResponse struct {
	Message string       `json:"message"`
	Admin   *domain.User `json:"admin"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statsResponse struct {
	Stats        statsBody      `json:"stats"`
	RecentAdmins []*domain.User `json:"recentAdmins"`
}

type statsBody struct {
	TotalAdmins int64 `json:"totalAdmins"`
	TotalGames  int64 `json:"totalGames"`
}

// List handles GET /api/admin/users.
//
// @Summary      List admin accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAdminsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	if admins == nil {
		admins = []*domain.User{}
	}
	return c.JSON(http.StatusOK, listAdminsResponse{Admins: admins})
}

// Create handles POST /api/admin/users.
//
// @Summary      Create an admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAdminRequest  true  "Admin credentials"
// @Success      201   {object}  createAdminResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.service.CreateAdmin(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createAdminResponse{
		Message: "Admin user created successfully",
		Admin:   admin,
	})
}

// Delete handles DELETE /api/admin/users/:id.
//
// @Summary      Delete an admin account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAdmin(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin user deleted successfully"})
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Portal statistics for the owner dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	if stats.RecentAdmins == nil {
		stats.RecentAdmins = []*domain.User{}
	}
	return c.JSON(http.StatusOK, statsResponse{
		Stats: statsBody{
			TotalAdmins: stats.TotalAdmins,
			TotalGames:  stats.TotalGames,
		},
		RecentAdmins: stats.RecentAdmins,
	})
}
