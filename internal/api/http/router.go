package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Areas       *handlers.AreaHandler
	Departments *handlers.DepartmentHandler
	Supervisors *handlers.SupervisorHandler
	Employees   *handlers.EmployeeHandler
	Metrics     *observability.Metrics
}

// crudHandler is the handler set shared by every entity resource.
type crudHandler interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	registerResource(app, "/area", cfg.Areas)
	registerResource(app, "/department", cfg.Departments)
	registerResource(app, "/supervisor", cfg.Supervisors)
	registerResource(app, "/employee", cfg.Employees)
}

func registerResource(app *fiber.App, prefix string, h crudHandler) {
	group := app.Group(prefix)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Post("/", h.Create)
	group.Patch("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
