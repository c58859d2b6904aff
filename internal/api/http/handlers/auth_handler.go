package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/dto"
	"github.com/spec-kit/cafeteria-service/internal/service"
	"github.com/spec-kit/cafeteria-service/internal/session"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// AuthHandler exposes the token endpoints under /api/auth.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions}
}

// Login handles POST /api/auth/login. It exchanges credentials for a bearer
// token without touching session state.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.IssueToken(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.FromUser(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Signup handles POST /api/auth/signup. New accounts are always clients.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, err := h.auth.RegisterClient(c.Context(), req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.FromUser(user)},
	})
}

// Session handles POST /api/auth/session: the bridge from a bearer token to a
// cookie session. A valid token buys a brand-new session; any token problem
// yields the same 401.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	user, err := h.auth.ResolveToken(c.Context(), req.Token)
	if err != nil {
		return err
	}
	if _, err := h.sessions.Create(c, user); err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}
