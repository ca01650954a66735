package handlers

import (
	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles staff login
// @Summary Login staff user
// @Description Verify credentials and issue a JWT access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Login failed")
	}
	return response.Success(c, "Login successful", result)
}

// Register handles staff account creation
// @Summary Register staff account
// @Description Create a staff account (admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterInput true "Staff account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Registration failed")
	}
	return response.Created(c, "Staff account created", user)
}

// Me returns the authenticated user's profile
// @Summary Get current user
// @Description Return the profile of the authenticated staff user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return response.Unauthorized(c, "User not authenticated")
	}

	user, err := h.authService.GetProfile(c.Context(), username)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get profile")
	}
	return response.Success(c, "Profile retrieved", user)
}
