package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/domain/temporal"
	"github.com/taskmaster/todo/internal/infrastructure/logger"
	"github.com/taskmaster/todo/internal/ports"
)

// TodoService runs every todo operation against the injected store
type TodoService struct {
	store     ports.TodoStore
	validator *TodoValidator
	codec     *temporal.Codec
	logger    *logger.Logger
}

var _ ports.TodoService = (*TodoService)(nil)

// NewTodoService creates a new todo service
func NewTodoService(store ports.TodoStore, codec *temporal.Codec, logger *logger.Logger) *TodoService {
	return NewTodoServiceWithClock(store, codec, time.Now, logger)
}

// NewTodoServiceWithClock is NewTodoService with an explicit clock for created_at
func NewTodoServiceWithClock(store ports.TodoStore, codec *temporal.Codec, now func() time.Time, logger *logger.Logger) *TodoService {
	return &TodoService{
		store:     store,
		validator: NewTodoValidator(codec, now),
		codec:     codec,
		logger:    logger.WithComponent("todo_service"),
	}
}

// List returns every todo rendered for display
func (s *TodoService) List(ctx context.Context) ([]entities.TodoView, error) {
	todos, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]entities.TodoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, t.View(s.codec))
	}
	return views, nil
}

// Create validates req and inserts the resulting todo
func (s *TodoService) Create(ctx context.Context, req entities.TodoRequest) (*entities.Todo, error) {
	todo, err := s.validator.ValidateAndBuild(req)
	if err != nil {
		return nil, err
	}

	var created *entities.Todo
	err = s.store.InTx(ctx, func(ctx context.Context, repo ports.TodoRepository) error {
		created, err = repo.Create(ctx, todo)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Todo created", "todo_id", created.ID, "title", created.Title)
	return created, nil
}

// Update merges req into the current row and returns the stored result
func (s *TodoService) Update(ctx context.Context, id int64, req entities.TodoRequest) (*entities.Todo, error) {
	if err := s.validator.CheckUpdate(req); err != nil {
		return nil, err
	}

	var updated *entities.Todo
	err := s.store.InTx(ctx, func(ctx context.Context, repo ports.TodoRepository) error {
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, id)
		}

		merged, err := req.Merge(s.codec, *current)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, &merged); err != nil {
			return notFoundOr(err, id)
		}

		updated, err = repo.GetByID(ctx, id)
		return notFoundOr(err, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Todo updated", "todo_id", id)
	return updated, nil
}

// Delete removes the todo and returns it as it was before removal
func (s *TodoService) Delete(ctx context.Context, id int64) (*entities.Todo, error) {
	var snapshot *entities.Todo
	err := s.store.InTx(ctx, func(ctx context.Context, repo ports.TodoRepository) error {
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, id)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return notFoundOr(err, id)
		}
		snapshot = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Todo deleted", "todo_id", id)
	return snapshot, nil
}

func notFoundOr(err error, id int64) error {
	if errors.Is(err, entities.ErrTodoNotFound) {
		return entities.NotFound(id)
	}
	return err
}
