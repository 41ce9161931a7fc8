package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/events"
	"github.com/xgustaf/todo-admin/internal/form"
	"github.com/xgustaf/todo-admin/internal/repository"
	"github.com/xgustaf/todo-admin/internal/slug"
)

var ErrTodoNotFound = errors.New("todo not found")

// PublishTimeout bounds how long a request waits on the event publisher.
const PublishTimeout = 2 * time.Second

// TodoService defines the operations behind the todo admin pages.
type TodoService interface {
	// List returns the todos authored by the given user.
	List(ctx context.Context, author domain.User) ([]domain.Todo, error)

	// Get loads a single todo by id.
	Get(ctx context.Context, id uint) (*domain.Todo, error)

	// Create stores a new todo owned by author.
	Create(ctx context.Context, author domain.User, in form.Valid) (*domain.Todo, error)

	// Edit applies a validated form to an existing todo.
	Edit(ctx context.Context, todo *domain.Todo, in form.Valid) error
}

type todoService struct {
	repo      repository.TodoRepository
	publisher events.Publisher
	log       *logrus.Entry
	now       func() time.Time
}

func NewTodoService(repo repository.TodoRepository, publisher events.Publisher, log *logrus.Entry) TodoService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &todoService{
		repo:      repo,
		publisher: publisher,
		log:       log.WithField("component", "todo_service"),
		now:       time.Now,
	}
}

func (s *todoService) List(ctx context.Context, author domain.User) ([]domain.Todo, error) {
	todos, err := s.repo.FindByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("list todos of user %d: %w", author.ID, err)
	}
	return todos, nil
}

func (s *todoService) Get(ctx context.Context, id uint) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("todo %d: %w", id, ErrTodoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load todo %d: %w", id, err)
	}
	return todo, nil
}

func (s *todoService) Create(ctx context.Context, author domain.User, in form.Valid) (*domain.Todo, error) {
	todo := &domain.Todo{
		Title:    in.Title,
		Slug:     slug.Make(in.Title),
		AuthorID: author.ID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	todo.Author = author

	s.publish(ctx, events.TodoCreated, todo)
	return todo, nil
}

func (s *todoService) Edit(ctx context.Context, todo *domain.Todo, in form.Valid) error {
	todo.Title = in.Title
	todo.Slug = slug.Make(in.Title)
	if err := s.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("todo %d: %w", todo.ID, ErrTodoNotFound)
		}
		return fmt.Errorf("update todo %d: %w", todo.ID, err)
	}

	s.publish(ctx, events.TodoUpdated, todo)
	return nil
}

// publish is best effort: the write is already committed. It outlives a
// cancelled request but never blocks it for more than PublishTimeout.
func (s *todoService) publish(ctx context.Context, eventType string, todo *domain.Todo) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
	defer cancel()

	err := s.publisher.Publish(ctx, events.Event{
		Type:     eventType,
		TodoID:   todo.ID,
		AuthorID: todo.AuthorID,
		Title:    todo.Title,
		Slug:     todo.Slug,
		At:       s.now().UTC(),
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":   eventType,
			"todo_id": todo.ID,
		}).Warn("failed to publish todo event")
	}
}
