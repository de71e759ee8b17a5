package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/infrastructure/database"
	"github.com/taskmaster/todo/internal/ports"
)

// TodoStore runs todo repositories against the shared pool
type TodoStore struct {
	db   *database.DB
	repo *TodoRepositoryImpl
	loc  *time.Location
}

var _ ports.TodoStore = (*TodoStore)(nil)

// NewTodoStore creates a store on db. loc is the reference timezone of start_time.
func NewTodoStore(db *database.DB, loc *time.Location) *TodoStore {
	return &TodoStore{
		db:   db,
		repo: NewTodoRepository(db.DB, loc),
		loc:  loc,
	}
}

func (s *TodoStore) List(ctx context.Context) ([]*entities.Todo, error) {
	todos, err := s.repo.List(ctx)
	return todos, classify(err)
}

func (s *TodoStore) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	created, err := s.repo.Create(ctx, todo)
	return created, classify(err)
}

func (s *TodoStore) GetByID(ctx context.Context, id int64) (*entities.Todo, error) {
	todo, err := s.repo.GetByID(ctx, id)
	return todo, classify(err)
}

func (s *TodoStore) Update(ctx context.Context, todo *entities.Todo) error {
	return classify(s.repo.Update(ctx, todo))
}

func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	return classify(s.repo.Delete(ctx, id))
}

// InTx runs fn in one serializable transaction. Once started the transaction
// runs to completion even if the request context is cancelled.
func (s *TodoStore) InTx(ctx context.Context, fn func(ctx context.Context, repo ports.TodoRepository) error) error {
	ctx = context.WithoutCancel(ctx)
	err := s.db.WithSerializableTx(ctx, func(tx *sqlx.Tx) error {
		return fn(ctx, NewTodoRepository(tx, s.loc))
	})
	return classify(err)
}

// classify converts store errors into the domain taxonomy. Domain errors and
// ErrTodoNotFound pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var domainErr *entities.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, entities.ErrTodoNotFound) {
		return err
	}
	if isConnectionError(err) {
		return entities.ConnectionFailure(err)
	}
	return entities.TransactionFailure(err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, database.ErrBeginTx) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}

	// class 08: connection exception
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	return false
}
