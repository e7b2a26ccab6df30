package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/recipe-service/internal/api/http/handlers"
	"github.com/spec-kit/recipe-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Accounts        *handlers.AccountsHandler
	Recipes         *handlers.RecipesHandler
	TokenMiddleware *auth.TokenMiddleware
	RateLimiter     *RateLimiter
	Gatherer        prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	user := api.Group("/user")
	user.Post("/create", cfg.RateLimiter.Handle, cfg.Accounts.Create)
	user.Post("/token", cfg.RateLimiter.Handle, cfg.Accounts.Token)

	me := user.Group("/me", cfg.TokenMiddleware.Handle, auth.RequireAccount())
	me.Get("", cfg.Accounts.Me)
	me.Patch("", cfg.Accounts.UpdateMe)
	me.Put("", cfg.Accounts.UpdateMe)
	me.All("", auth.AllowMethods(fiber.MethodGet, fiber.MethodHead, fiber.MethodPatch, fiber.MethodPut))

	recipes := api.Group("/recipe/recipes", cfg.TokenMiddleware.Handle, auth.RequireAccount())
	recipes.Get("", cfg.Recipes.List)
	recipes.Post("", cfg.Recipes.Create)
	recipes.Get("/:id", cfg.Recipes.Get)
	recipes.Patch("/:id", cfg.Recipes.Update)
	recipes.Put("/:id", cfg.Recipes.Update)
	recipes.Delete("/:id", cfg.Recipes.Delete)
}
