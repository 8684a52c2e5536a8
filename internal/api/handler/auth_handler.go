package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retroportal/games-api/internal/api/metrics"
	"github.com/retroportal/games-api/internal/api/middleware"
	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

// AuthHandler handles login and the one-time owner registration.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email           string `json:"email"           validate:"required"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type ownerExistsResponse struct {
	Exists bool `json:"exists"`
}

type currentUserResponse struct {
	User *domain.User `json:"user"`
}

// Login handles POST /api/auth/login.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Register handles POST /api/auth/register. It creates the single owner
// account; once an owner exists, further registrations are rejected.
//
// @Summary      Register the owner account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Owner credentials"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.service.Register(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// OwnerExists handles GET /api/auth/owner-exists. The setup page uses it to
// decide whether to show the registration form.
//
// @Summary      Whether the owner account has been created
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ownerExistsResponse
// @Router       /api/auth/owner-exists [get]
func (h *AuthHandler) OwnerExists(c echo.Context) error {
	exists, err := h.service.OwnerExists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ownerExistsResponse{Exists: exists})
}

// Me handles GET /api/auth/me. It returns the account behind the presented
// token so clients can restore their session.
//
// @Summary      Current authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  currentUserResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUserResponse{User: middleware.CurrentUser(c)})
}
