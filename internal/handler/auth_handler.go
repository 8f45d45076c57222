package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/middleware"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	ID        int32   `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// Callback handles POST /auth/callback. The frontend calls it once after
// receiving the Auth0 token; the owner row is provisioned on first login.
func (h *AuthHandler) Callback(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		log.Error().Msg("No Auth0 ID in context - middleware may not be configured")
		return NewUnauthorizedError(c, "Authentication required")
	}

	customClaims := middleware.GetCustomClaims(c)
	var email, name string
	if customClaims != nil {
		email = customClaims.Email
		name = customClaims.Name
	}

	if email == "" {
		log.Error().Str("auth0_id", auth0ID).Msg("No email in JWT claims")
		return NewValidationError(c, "Email is required for authentication", []ValidationError{
			{Field: "email", Message: "Email claim is missing from token"},
		})
	}

	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	owner, err := h.authService.HandleCallback(auth0ID, email, namePtr)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to provision owner")
		return NewInternalError(c, "Failed to authenticate")
	}

	return c.JSON(http.StatusOK, OwnerResponse{
		ID:        owner.ID,
		Email:     owner.Email,
		Name:      owner.Name,
		CreatedAt: owner.CreatedAt.Format(time.RFC3339),
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	owner, err := h.authService.GetOwnerByAuth0ID(auth0ID)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to get owner")
		return NewNotFoundError(c, "Owner not found")
	}

	return c.JSON(http.StatusOK, OwnerResponse{
		ID:        owner.ID,
		Email:     owner.Email,
		Name:      owner.Name,
		CreatedAt: owner.CreatedAt.Format(time.RFC3339),
	})
}
