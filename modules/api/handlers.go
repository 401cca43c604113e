package api

import (
	"context"
	"errors"
	"log"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/modules/auth"
	taskmod "github.com/example/taskboard/modules/task"
	"github.com/gofiber/fiber/v2"
)

// TaskService is the port the handlers use to reach the task module.
type TaskService interface {
	List(ctx context.Context) ([]task.Task, bool, error)
	Create(ctx context.Context, title string) (*task.Task, error)
	Update(ctx context.Context, id uint, fields taskmod.UpdateFields) (*task.Task, error)
	Delete(ctx context.Context, id uint) error
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	auth  auth.AuthPort
	tasks TaskService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, tasks TaskService) *Handlers {
	return &Handlers{
		auth:  authPort,
		tasks: tasks,
	}
}

// Login authenticates the submitted credentials and returns a bearer
// token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Msg: "invalid username or password",
			})
		}
		log.Printf("[api] login failed: %v", err)
		return serverError(c)
	}

	return c.JSON(TokenResponse{AccessToken: token})
}

// ListTasks returns all tasks, from the snapshot cache when it is warm.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, fromCache, err := h.tasks.List(c.UserContext())
	if err != nil {
		log.Printf("[api] list tasks failed: %v", err)
		return serverError(c)
	}

	c.Set("X-Cache", cacheHeader(fromCache))
	return c.JSON(tasks)
}

// CreateTask creates a task from the request title.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.tasks.Create(c.UserContext(), req.Title)
	if err != nil {
		return h.taskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTask applies the supplied fields to an existing task and
// returns the updated row.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid task id")
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.tasks.Update(c.UserContext(), uint(id), taskmod.UpdateFields{
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		return h.taskError(c, err)
	}

	return c.JSON(t)
}

// DeleteTask removes a task by id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid task id")
	}

	if err := h.tasks.Delete(c.UserContext(), uint(id)); err != nil {
		return h.taskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// taskError maps service errors onto the HTTP taxonomy: validation
// failures become 400, a missing row becomes 404 and everything else
// becomes 500 with no internals exposed.
func (h *Handlers) taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, taskmod.ErrEmptyTitle), errors.Is(err, taskmod.ErrNoFields):
		return badRequest(c, err.Error())
	case errors.Is(err, taskmod.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[api] task operation failed: %v", err)
		return serverError(c)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: message})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "an internal error occurred"})
}

func cacheHeader(fromCache bool) string {
	if fromCache {
		return "HIT"
	}
	return "MISS"
}
