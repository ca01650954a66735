package handlers

import (
	"strconv"

	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TokenHandler handles queue token endpoints
type TokenHandler struct {
	tokenService *services.TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// IssueToken creates a new queue token
// @Summary Issue queue token
// @Description Issue the next daily token for a patient in a department
// @Tags Tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.IssueTokenInput true "Token request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tokens [post]
func (h *TokenHandler) IssueToken(c *fiber.Ctx) error {
	var input services.IssueTokenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.tokenService.IssueToken(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to issue token")
	}
	return response.Created(c, "Token issued", token)
}

// ListTokens returns today's tokens
// @Summary List today's tokens
// @Description List today's tokens, priority first then oldest first
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param department_id query int false "Filter by department"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /tokens [get]
func (h *TokenHandler) ListTokens(c *fiber.Ctx) error {
	departmentID := uint(c.QueryInt("department_id", 0))
	status := c.Query("status")

	tokens, err := h.tokenService.ListTokens(c.Context(), departmentID, status)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list tokens")
	}
	return response.Success(c, "Tokens retrieved", tokens)
}

// GetToken returns one token
// @Summary Get token
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tokens/{id} [get]
func (h *TokenHandler) GetToken(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid token ID")
	}

	token, err := h.tokenService.GetToken(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get token")
	}
	return response.Success(c, "Token retrieved", token)
}

// NextToken returns the next waiting token for a department
// @Summary Peek next token
// @Description Return the token that would be called next for a department
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param department_id query int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tokens/next [get]
func (h *TokenHandler) NextToken(c *fiber.Ctx) error {
	departmentID := uint(c.QueryInt("department_id", 0))

	token, err := h.tokenService.NextToken(c.Context(), departmentID)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get next token")
	}
	return response.Success(c, "Next token retrieved", token)
}

// CallToken calls a waiting token to a counter
// @Summary Call token
// @Description Move a waiting token to called and announce the counter
// @Tags Tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Param body body services.CallTokenInput true "Counter assignment"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tokens/{id}/call [patch]
func (h *TokenHandler) CallToken(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid token ID")
	}

	var input services.CallTokenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.tokenService.CallToken(c.Context(), id, &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to call token")
	}
	return response.Success(c, "Token called", token)
}

// ServeToken marks a called token as being attended
// @Summary Serve token
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tokens/{id}/serve [patch]
func (h *TokenHandler) ServeToken(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid token ID")
	}

	token, err := h.tokenService.ServeToken(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to serve token")
	}
	return response.Success(c, "Token serving", token)
}

// SkipToken sets a token aside
// @Summary Skip token
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tokens/{id}/skip [patch]
func (h *TokenHandler) SkipToken(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid token ID")
	}

	token, err := h.tokenService.SkipToken(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to skip token")
	}
	return response.Success(c, "Token skipped", token)
}

// CompleteToken closes the visit
// @Summary Complete token
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tokens/{id}/complete [patch]
func (h *TokenHandler) CompleteToken(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid token ID")
	}

	token, err := h.tokenService.CompleteToken(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to complete token")
	}
	return response.Success(c, "Token completed", token)
}

// CancelToken removes an active token from the queue
// @Summary Cancel token
// @Description Delete an active token; terminal tokens cannot be cancelled
// @Tags Tokens
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tokens/{id} [delete]
func (h *TokenHandler) CancelToken(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid token ID")
	}

	if err := h.tokenService.CancelToken(c.Context(), id); err != nil {
		return response.FromDomainError(c, err, "Failed to cancel token")
	}
	return response.Success(c, "Token cancelled", nil)
}
