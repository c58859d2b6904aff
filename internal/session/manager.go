package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/cafeteria-service/internal/config"
	"github.com/spec-kit/cafeteria-service/internal/domain"
)

// Manager binds the session store to the cookie that carries the session
// identifier.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager builds a manager from auth configuration.
func NewManager(store Store, cfg config.AuthConfig) *Manager {
	return &Manager{
		store:      store,
		cookieName: cfg.SessionCookieName,
		ttl:        cfg.SessionTTL(),
		secure:     cfg.SecureCookies,
	}
}

// Create establishes a session for user and sets the cookie. Every call mints
// a fresh identifier; a pre-existing anonymous session is never promoted, so
// a fixated cookie value can never gain an identity.
func (m *Manager) Create(c *fiber.Ctx, user *domain.User) (string, error) {
	id := uuid.NewString()
	rec := &Record{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		LoginAt: time.Now(),
	}
	if err := m.store.Save(c.Context(), id, rec); err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id, nil
}

// Resolve reads the session cookie and returns the bound record, or nil when
// the request carries no live session.
func (m *Manager) Resolve(c *fiber.Ctx) (*Record, error) {
	id := c.Cookies(m.cookieName)
	if id == "" {
		return nil, nil
	}
	return m.store.Get(c.Context(), id)
}

// Destroy invalidates the current session and clears the cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	id := c.Cookies(m.cookieName)
	if id != "" {
		if err := m.store.Delete(c.Context(), id); err != nil {
			return err
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}
