package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soporteit/helpdesk-service/internal/api/http/handlers"
	"github.com/soporteit/helpdesk-service/internal/auth"
	"github.com/soporteit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Attachments    *handlers.AttachmentsHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/debug/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	staff := []domain.Role{domain.RoleAdmin, domain.RoleTechnician}

	categories := app.Group("/categories", cfg.AuthMiddleware.Handle)
	categories.Get("/", auth.RequireAuthenticated(), cfg.Catalog.List)
	categories.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Catalog.Create)
	categories.Patch("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Catalog.Update)
	categories.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Catalog.Delete)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/number/:number", cfg.Tickets.GetByNumber)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Get("/:id/history", cfg.Tickets.History)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Delete)

	tickets.Post("/:id/assign", auth.RequireRole(staff...), cfg.Tickets.Assign)
	tickets.Post("/:id/accept", auth.RequireRole(staff...), cfg.Tickets.Accept)
	tickets.Post("/:id/reject", auth.RequireRole(staff...), cfg.Tickets.Reject)
	tickets.Post("/:id/resolve", auth.RequireRole(staff...), cfg.Tickets.Resolve)
	tickets.Post("/:id/pending-client", auth.RequireRole(staff...), cfg.Tickets.MarkPendingClient)
	tickets.Post("/:id/resume", auth.RequireRole(staff...), cfg.Tickets.ResumeWork)
	tickets.Post("/:id/close", cfg.Tickets.Close)
	tickets.Post("/:id/reopen", cfg.Tickets.Reopen)

	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/attachments", cfg.Attachments.Upload)

	attachments := app.Group("/attachments", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	attachments.Delete("/:id", cfg.Attachments.Delete)
}
