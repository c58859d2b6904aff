package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/domain"
)

const principalKey = "auth_principal"

// Source records which identity carrier resolved the principal.
type Source string

const (
	SourceSession Source = "session"
	SourceToken   Source = "token"
)

// Principal represents the authenticated caller for the duration of one
// request. It is a read-only snapshot: role mutation is a domain concern.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
	Source Source
}

// SetPrincipal stores the resolved principal on the request.
func SetPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}

// PrincipalFromContext retrieves the authenticated entity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}
