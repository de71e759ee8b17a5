package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/ports"
)

const todoColumns = `id, title, body, start_time, created_at`

// TodoRepositoryImpl implements ports.TodoRepository on a pool or a transaction
type TodoRepositoryImpl struct {
	db  sqlx.ExtContext
	loc *time.Location
}

var _ ports.TodoRepository = (*TodoRepositoryImpl)(nil)

// NewTodoRepository creates a todo repository. Scanned start times are
// converted to loc so reads match what was written.
func NewTodoRepository(db sqlx.ExtContext, loc *time.Location) *TodoRepositoryImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &TodoRepositoryImpl{db: db, loc: loc}
}

func (r *TodoRepositoryImpl) List(ctx context.Context) ([]*entities.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id >= 0 ORDER BY id`

	var todos []*entities.Todo
	if err := sqlx.SelectContext(ctx, r.db, &todos, query); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	for _, t := range todos {
		r.localize(t)
	}
	return todos, nil
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	query := `
		INSERT INTO todos (title, body, start_time, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + todoColumns

	var created entities.Todo
	err := sqlx.GetContext(ctx, r.db, &created, query,
		todo.Title, todo.Body, todo.StartTime, todo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	r.localize(&created)
	return &created, nil
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	var todo entities.Todo
	err := sqlx.GetContext(ctx, r.db, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo by id: %w", err)
	}
	r.localize(&todo)
	return &todo, nil
}

// Update writes title, body and start_time. created_at is never written.
func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *entities.Todo) error {
	query := `UPDATE todos SET title = $2, body = $3, start_time = $4 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, todo.ID, todo.Title, todo.Body, todo.StartTime)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return requireRow(result)
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireRow(result)
}

func (r *TodoRepositoryImpl) localize(t *entities.Todo) {
	t.StartTime = t.StartTime.In(r.loc)
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTodoNotFound
	}
	return nil
}
