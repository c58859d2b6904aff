package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	"github.com/spec-kit/cafeteria-service/internal/session"
)

const bearerPrefix = "Bearer "

// Resolver produces the request principal, trying an established session
// first and a bearer token second. It never fails a request itself: every
// resolution failure leaves the request anonymous and lets the authorization
// policy decide. Distinguishing why resolution failed would hand probes an
// oracle, so it does not.
type Resolver struct {
	tokens       *TokenManager
	users        repository.UserRepository
	sessions     *session.Manager
	skipPrefixes []string
}

// NewResolver constructs a resolver. Paths under skipPrefixes bypass
// resolution entirely; the login and token-issue endpoints live there, and
// first-time callers have no token to resolve yet.
func NewResolver(tokens *TokenManager, users repository.UserRepository, sessions *session.Manager, skipPrefixes ...string) *Resolver {
	return &Resolver{tokens: tokens, users: users, sessions: sessions, skipPrefixes: skipPrefixes}
}

// Handle resolves identity from session or bearer token, in that order.
// A session identity wins outright: a stray Authorization header must not
// re-resolve identity mid-session.
func (r *Resolver) Handle(c *fiber.Ctx) error {
	if r.skip(c.Path()) {
		return c.Next()
	}

	if done := r.resolveSession(c); done {
		return c.Next()
	}
	r.resolveBearer(c)
	return c.Next()
}

// HandleSessionOnly resolves identity from the session alone. The web
// pipeline uses it; bearer tokens on web routes are deliberately not
// supported.
func (r *Resolver) HandleSessionOnly(c *fiber.Ctx) error {
	if r.skip(c.Path()) {
		return c.Next()
	}
	r.resolveSession(c)
	return c.Next()
}

// resolveSession reports whether a session carried an identity. When it does,
// token parsing is skipped even if the snapshot is somehow unusable.
func (r *Resolver) resolveSession(c *fiber.Ctx) bool {
	rec, err := r.sessions.Resolve(c)
	if err != nil || rec == nil {
		return false
	}

	SetPrincipal(c, &Principal{
		UserID: rec.UserID,
		Name:   rec.Name,
		Email:  rec.Email,
		Role:   rec.Role,
		Source: SourceSession,
	})
	return true
}

func (r *Resolver) resolveBearer(c *fiber.Ctx) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return
	}

	raw := strings.TrimPrefix(header, bearerPrefix)
	if !r.tokens.Verify(raw) {
		return
	}
	subject, err := r.tokens.Subject(raw)
	if err != nil {
		return
	}

	user, err := r.users.GetByEmail(c.Context(), subject)
	if err != nil {
		// Unknown subject and store failure both collapse to anonymous.
		return
	}

	SetPrincipal(c, principalFor(user, SourceToken))
}

func (r *Resolver) skip(path string) bool {
	for _, prefix := range r.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func principalFor(user *domain.User, source Source) *Principal {
	return &Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Source: source,
	}
}
