package task

import (
	"context"
	"errors"
	"log"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/modules/cache"
)

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("task title cannot be empty")
	// ErrNoFields is returned when an update supplies neither title nor
	// status.
	ErrNoFields = errors.New("no fields to update")
	// ErrTaskNotFound is returned when no task with the given id
	// exists.
	ErrTaskNotFound = errors.New("task not found")
)

// UpdateFields carries the optional fields of an update. A nil pointer
// means "field not supplied", which is distinct from an empty string.
type UpdateFields struct {
	Title  *string
	Status *string
}

// Service implements the task operations: validation, sanitization,
// store access and cache-aside composition.
type Service struct {
	repo  *task.Repository
	cache *cache.SnapshotCache
}

// NewService creates a new task service.
func NewService(repo *task.Repository, c *cache.SnapshotCache) *Service {
	return &Service{
		repo:  repo,
		cache: c,
	}
}

// List returns all tasks, serving from the snapshot cache when it is
// warm. The second return value reports whether the cache served the
// result. Miss and Unavailable both fall through to the store.
func (s *Service) List(ctx context.Context) ([]task.Task, bool, error) {
	var cached []task.Task
	if s.cache.Get(ctx, &cached) == cache.Hit {
		return cached, true, nil
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}

	if err := s.cache.Set(ctx, tasks); err != nil {
		log.Printf("[task] snapshot cache write failed: %v", err)
	}

	return tasks, false, nil
}

// Create sanitizes and persists a new task, then invalidates the
// snapshot. The title must be non-empty after trimming.
func (s *Service) Create(ctx context.Context, title string) (*task.Task, error) {
	title = sanitizeTitle(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &task.Task{Title: title}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return t, nil
}

// Update applies the supplied fields to the task with the given id and
// returns the post-update row. At least one field must be supplied; an
// explicitly empty title is rejected rather than clearing the title,
// preserving the non-empty-title invariant.
func (s *Service) Update(ctx context.Context, id uint, fields UpdateFields) (*task.Task, error) {
	values := make(map[string]any, 2)
	if fields.Title != nil {
		title := sanitizeTitle(*fields.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		values["title"] = title
	}
	if fields.Status != nil {
		values["status"] = sanitizeText(*fields.Status)
	}
	if len(values) == 0 {
		return nil, ErrNoFields
	}

	if err := s.repo.Updates(ctx, id, values); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	s.invalidate(ctx)
	return t, nil
}

// Delete removes the task with the given id and invalidates the
// snapshot. Deleting an absent id reports ErrTaskNotFound.
func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}

	s.invalidate(ctx)
	return nil
}

// invalidate drops the snapshot after a successful write. Failures are
// logged and swallowed: the TTL bounds how long a stale snapshot can
// outlive a missed invalidation.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[task] snapshot invalidation failed: %v", err)
	}
}
