package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/dto"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// ProfileHandler exposes the caller's own account under /api/profile.
type ProfileHandler struct {
	users repository.UserRepository
}

// NewProfileHandler constructs handler.
func NewProfileHandler(users repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.GetByID(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.FromUser(user)}})
}

// Update handles PUT /api/profile. Email and role are immutable here.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.GetByID(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	user.Address = req.Address
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.FromUser(user)}})
}
