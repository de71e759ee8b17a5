package ports

import (
	"context"

	"github.com/taskmaster/todo/internal/domain/entities"
)

// TodoRepository defines the interface for todo data operations.
// GetByID and Delete return entities.ErrTodoNotFound when no row matches.
type TodoRepository interface {
	List(ctx context.Context) ([]*entities.Todo, error)
	Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error)
	GetByID(ctx context.Context, id int64) (*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, id int64) error
}

// TodoStore is a TodoRepository that can also run a unit of work atomically.
// Store failures surface as *entities.Error values; fn receives the context and
// repository bound to the transaction.
type TodoStore interface {
	TodoRepository
	InTx(ctx context.Context, fn func(ctx context.Context, repo TodoRepository) error) error
}
