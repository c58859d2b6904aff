package http

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/spec-kit/cafeteria-service/internal/api/http/handlers"
	"github.com/spec-kit/cafeteria-service/internal/api/http/web"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Profile  *handlers.ProfileHandler
	Products *handlers.ProductsHandler
	Orders   *handlers.OrdersHandler
	Web      *handlers.WebHandler
	Cart     *handlers.CartHandler
	Admin    *handlers.AdminHandler
	Resolver *auth.Resolver
}

// APIPolicy is the rule set for the /api pipeline. Token issuance and signup
// are open, the admin surface is staff-only, and everything else under /api
// needs a resolved principal.
func APIPolicy() *auth.Policy {
	return auth.NewPolicy(
		auth.PublicRule("/api/auth/*"),
		auth.RoleRule("/api/admin/*", domain.RoleStaff),
	)
}

// WebPolicy is the rule set for the browser pipeline. Pages anyone may see
// are listed first; the cart and profile belong to clients, the admin console
// to staff, and anything unlisted requires authentication.
func WebPolicy() *auth.Policy {
	return auth.NewPolicy(
		auth.PublicRule("/css/*"),
		auth.PublicRule("/js/*"),
		auth.PublicRule("/images/*"),
		auth.PublicRule("/favicon.ico"),
		auth.PublicRule("/"),
		auth.PublicRule("/menu"),
		auth.PublicRule("/about"),
		auth.PublicRule("/login"),
		auth.PublicRule("/signup"),
		auth.PublicRule("/logout"),
		auth.RoleRule("/cart/*", domain.RoleClient),
		auth.RoleRule("/profile", domain.RoleClient),
		auth.RoleRule("/admin/*", domain.RoleStaff),
	)
}

// RegisterRoutes wires HTTP routes. The API and web pipelines each get their
// own resolution and enforcement chain; neither sees the other's requests.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.Resolver.Handle, auth.EnforceAPI(APIPolicy()))
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/signup", cfg.Auth.Signup)
	api.Post("/auth/session", cfg.Auth.Session)
	api.Get("/profile", cfg.Profile.Get)
	api.Put("/profile", cfg.Profile.Update)
	api.Get("/products", cfg.Products.List)
	api.Get("/products/:id", cfg.Products.Get)
	api.Get("/orders", cfg.Orders.List)
	api.Get("/orders/:id", cfg.Orders.Get)
	api.Get("/admin/dashboard", cfg.Orders.Dashboard)

	app.Use(webOnly(cfg.Resolver.HandleSessionOnly))
	app.Use(webOnly(auth.EnforceWeb(WebPolicy(), "/login")))

	app.Use("/css", filesystem.New(filesystem.Config{
		Root:       http.FS(web.StaticFS),
		PathPrefix: "static/css",
	}))

	app.Get("/", cfg.Web.Home)
	app.Get("/menu", cfg.Web.Home)
	app.Get("/about", cfg.Web.About)
	app.Get("/login", cfg.Web.LoginPage)
	app.Post("/login", cfg.Web.Login)
	app.Get("/logout", cfg.Web.Logout)
	app.Post("/logout", cfg.Web.Logout)
	app.Get("/signup", cfg.Web.SignupPage)
	app.Post("/signup", cfg.Web.Signup)
	app.Get("/profile", cfg.Web.ProfilePage)
	app.Post("/profile", cfg.Web.ProfileUpdate)
	app.Get("/orders", cfg.Web.OrdersPage)

	app.Get("/cart", cfg.Cart.View)
	app.Post("/cart/add", cfg.Cart.Add)
	app.Post("/cart/update", cfg.Cart.Update)
	app.Post("/cart/remove", cfg.Cart.Remove)
	app.Post("/cart/checkout", cfg.Cart.Checkout)

	app.Get("/admin/dashboard", cfg.Admin.Dashboard)
	app.Get("/admin/products", cfg.Admin.Products)
	app.Post("/admin/products", cfg.Admin.ProductCreate)
	app.Post("/admin/products/:id", cfg.Admin.ProductUpdate)
	app.Post("/admin/products/:id/delete", cfg.Admin.ProductDelete)
	app.Get("/admin/orders", cfg.Admin.Orders)
	app.Post("/admin/orders/:id/status", cfg.Admin.OrderStatus)
	app.Post("/admin/orders/:id/delete", cfg.Admin.OrderDelete)
}

// webOnly keeps a web-pipeline middleware away from the API and health
// routes, which run their own chains.
func webOnly(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/api" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/health") {
			return c.Next()
		}
		return h(c)
	}
}
