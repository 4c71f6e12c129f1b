package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-system/internal/api/metrics"
	"github.com/carelink/hospital-system/internal/core/domain"
	"github.com/carelink/hospital-system/internal/core/ports"
)

// LoginLimiter caps login attempts per email at the service boundary. The
// client-side lockout resets on page reload, so the server keeps its own
// counter. A nil limiter disables the check (Redis not configured).
type LoginLimiter interface {
	Allow(ctx context.Context, email string) bool
	Reset(ctx context.Context, email string)
}

type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
}

func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Client-facing auth messages. These are a published contract with existing
// frontends; do not reword.
const (
	msgSignupSuccess  = "Signup successful"
	msgMissingField   = "Email and password are required"
	msgDuplicateEmail = "Email already registered"
	msgUserNotFound   = "User not found"
	msgInvalidPass    = "Invalid password"
	msgThrottled      = "Too many login attempts. Try again later."
)

// Signup creates a new account. No token is issued; login is a separate step.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	err := h.authService.Signup(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		metrics.SignupsTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, messageResponse{Message: msgSignupSuccess})
	case errors.Is(err, domain.ErrMissingField):
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgMissingField})
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgDuplicateEmail})
	default:
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}
}

// Login verifies credentials and returns a bearer token valid for one hour.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	ctx := c.Request().Context()
	if h.limiter != nil && req.Email != "" && !h.limiter.Allow(ctx, req.Email) {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return c.JSON(http.StatusTooManyRequests, errorResponse{Error: msgThrottled})
	}

	token, err := h.authService.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
		if h.limiter != nil {
			h.limiter.Reset(ctx, req.Email)
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		return c.JSON(http.StatusOK, tokenResponse{Token: token})
	case errors.Is(err, domain.ErrMissingField):
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgMissingField})
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.LoginsTotal.WithLabelValues("user_not_found").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgUserNotFound})
	case errors.Is(err, domain.ErrInvalidPassword):
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidPass})
	default:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
}
