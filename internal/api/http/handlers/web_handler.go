package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/http/web"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	"github.com/spec-kit/cafeteria-service/internal/service"
	"github.com/spec-kit/cafeteria-service/internal/session"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// WebHandler serves the browser-facing pages and the form login flow.
type WebHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	products *service.ProductService
	orders   *service.OrderService
	users    repository.UserRepository
	views    *web.View
}

// WebDependencies bundles requirements for the web handler.
type WebDependencies struct {
	Auth     *service.AuthService
	Sessions *session.Manager
	Products *service.ProductService
	Orders   *service.OrderService
	UserRepo repository.UserRepository
	Views    *web.View
}

// NewWebHandler constructs handler.
func NewWebHandler(deps WebDependencies) *WebHandler {
	return &WebHandler{
		auth:     deps.Auth,
		sessions: deps.Sessions,
		products: deps.Products,
		orders:   deps.Orders,
		users:    deps.UserRepo,
		views:    deps.Views,
	}
}

// Home handles GET / and GET /menu.
func (h *WebHandler) Home(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return h.views.Render(c, "home", fiber.Map{
		"Title":     "Menu",
		"Products":  products,
		"LoggedOut": c.Query("logout") == "true",
	})
}

// About handles GET /about.
func (h *WebHandler) About(c *fiber.Ctx) error {
	return h.views.Render(c, "about", fiber.Map{"Title": "About"})
}

// LoginPage handles GET /login. An already-authenticated visitor is sent to
// their landing page instead of the form.
func (h *WebHandler) LoginPage(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return redirectByRole(c, principal.Role)
	}
	return h.views.Render(c, "login", fiber.Map{
		"Title":      "Log in",
		"Error":      c.Query("error") == "true",
		"Registered": c.Query("registered") == "true",
	})
}

// Login handles POST /login. Failure redirects back to the form without
// saying whether the email or the password was wrong.
func (h *WebHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.auth.Authenticate(c.Context(), email, password)
	if err != nil {
		return c.Redirect("/login?error=true", fiber.StatusFound)
	}
	if _, err := h.sessions.Create(c, user); err != nil {
		return apperrors.NewInternalError(err)
	}
	return redirectByRole(c, user.Role)
}

// Logout handles GET and POST /logout.
func (h *WebHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Redirect("/?logout=true", fiber.StatusFound)
}

// SignupPage handles GET /signup.
func (h *WebHandler) SignupPage(c *fiber.Ctx) error {
	return h.views.Render(c, "signup", fiber.Map{
		"Title": "Sign up",
		"Taken": c.Query("error") == "taken",
		"Error": c.Query("error") == "invalid",
	})
}

// Signup handles POST /signup.
func (h *WebHandler) Signup(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if name == "" || email == "" || password == "" {
		return c.Redirect("/signup?error=invalid", fiber.StatusFound)
	}

	_, err := h.auth.RegisterClient(c.Context(), name, email, password, c.FormValue("address"))
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "CONFLICT" {
			return c.Redirect("/signup?error=taken", fiber.StatusFound)
		}
		return err
	}
	return c.Redirect("/login?registered=true", fiber.StatusFound)
}

// ProfilePage handles GET /profile.
func (h *WebHandler) ProfilePage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	user, err := h.users.GetByID(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return h.views.Render(c, "profile", fiber.Map{
		"Title": "Profile",
		"User":  user,
		"Saved": c.Query("saved") == "true",
	})
}

// ProfileUpdate handles POST /profile.
func (h *WebHandler) ProfileUpdate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	user, err := h.users.GetByID(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	if name := c.FormValue("name"); name != "" {
		user.Name = name
	}
	user.Address = c.FormValue("address")
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}
	return c.Redirect("/profile?saved=true", fiber.StatusFound)
}

// OrdersPage handles GET /orders.
func (h *WebHandler) OrdersPage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	orders, err := h.orders.ListForUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return h.views.Render(c, "orders", fiber.Map{
		"Title":  "My orders",
		"Orders": orders,
		"Placed": c.Query("placed") == "true",
	})
}

// redirectByRole sends a freshly authenticated user to the page their role
// starts on.
func redirectByRole(c *fiber.Ctx, role domain.Role) error {
	if role == domain.RoleStaff {
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}
