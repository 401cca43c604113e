package task

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository provides database operations for tasks. Each method issues
// a single parameterized statement; there are no multi-statement
// transactions.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves all tasks. Order is store-defined and not guaranteed
// stable across calls.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a new task and fills in the generated ID.
func (r *Repository) Create(ctx context.Context, t *Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its ID. Returns nil when no row exists.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Task, error) {
	var t Task
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

// Updates applies the given column values to the task with the given ID
// in a single UPDATE statement. Updating an absent ID is not an error
// here; callers detect it by re-selecting the row.
func (r *Repository) Updates(ctx context.Context, id uint, values map[string]any) error {
	if err := r.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task by its ID and reports whether a row was
// actually deleted.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Migrate runs database migrations for the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Task{})
}
