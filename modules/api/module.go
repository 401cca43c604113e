package api

import (
	"context"
	"fmt"
	"log"

	authmod "github.com/example/taskboard/modules/auth"
	taskmod "github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module is the HTTP API module.
type Module struct {
	app     *fiber.App
	authMod *authmod.AuthModule
	taskMod *taskmod.Module
	port    int
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module listening on the given port.
func NewModule(port int) *Module {
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetAuthModule wires the auth module dependency.
func (m *Module) SetAuthModule(am *authmod.AuthModule) {
	m.authMod = am
}

// SetTaskModule wires the task module dependency.
func (m *Module) SetTaskModule(tm *taskmod.Module) {
	m.taskMod = tm
}

// Start configures the Fiber app and begins serving. The auth and task
// modules must be registered (and therefore started) before this one.
func (m *Module) Start(_ context.Context) error {
	if m.authMod == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskMod == nil {
		return fmt.Errorf("task dependency not set")
	}

	authService := m.authMod.GetService()
	taskService := m.taskMod.GetService()
	if authService == nil || taskService == nil {
		return fmt.Errorf("dependency modules not started")
	}

	m.app = fiber.New(fiber.Config{
		AppName:               "Taskboard",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	// Global middleware
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	registerRoutes(m.app, NewHandlers(authService, taskService), authService)

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// registerRoutes configures all HTTP routes.
func registerRoutes(app *fiber.App, handlers *Handlers, authPort authmod.AuthPort) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// Public login route
	app.Post("/login", handlers.Login)

	// Protected task routes
	tasks := app.Group("/tasks")
	tasks.Use(AuthMiddleware(authPort))
	tasks.Get("/", handlers.ListTasks)
	tasks.Post("/", handlers.CreateTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
}

// Stop shuts down the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// errorHandler converts Fiber errors into the JSON error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{Error: message})
}

// GetApp returns the Fiber app (for testing).
func (m *Module) GetApp() *fiber.App {
	return m.app
}
