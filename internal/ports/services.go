package ports

import (
	"context"

	"github.com/taskmaster/todo/internal/domain/entities"
)

// TodoService interface for todo operations exposed over HTTP
type TodoService interface {
	List(ctx context.Context) ([]entities.TodoView, error)
	Create(ctx context.Context, req entities.TodoRequest) (*entities.Todo, error)
	Update(ctx context.Context, id int64, req entities.TodoRequest) (*entities.Todo, error)
	Delete(ctx context.Context, id int64) (*entities.Todo, error)
}
