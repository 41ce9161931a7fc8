package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xgustaf/todo-admin/internal/domain"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// TodoRepository defines the data operations on todos
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
}

type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

// Create inserts the todo; GORM fills in the ID and timestamps.
func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	// Omit the association so an attached Author is never upserted.
	return r.db.WithContext(ctx).Omit("Author").Create(todo).Error
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// FindByAuthor returns the author's todos in whatever order the store yields.
func (r *gormTodoRepository) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Update writes title and slug only; the author is fixed at creation.
func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Todo{ID: todo.ID}).
		Select("Title", "Slug", "UpdatedAt").
		Updates(domain.Todo{Title: todo.Title, Slug: todo.Slug})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
