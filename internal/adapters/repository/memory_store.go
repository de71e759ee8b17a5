package repository

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/ports"
)

// MemoryStore is an in-process ports.TodoStore. Transactions hold the store
// lock for their whole duration and commit by swapping in their working copy.
type MemoryStore struct {
	mu      sync.Mutex
	rows    map[int64]entities.Todo
	nextID  int64
	failure error
}

var _ ports.TodoStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[int64]entities.Todo{}}
}

// SetFailure makes every following call return err until reset with nil
func (s *MemoryStore) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// Len returns the number of stored todos
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *MemoryStore) List(ctx context.Context) (todos []*entities.Todo, err error) {
	err = s.live(func(tx *memoryTx) (err error) {
		todos, err = tx.List(ctx)
		return
	})
	return
}

func (s *MemoryStore) Create(ctx context.Context, todo *entities.Todo) (created *entities.Todo, err error) {
	err = s.live(func(tx *memoryTx) (err error) {
		created, err = tx.Create(ctx, todo)
		return
	})
	return
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (todo *entities.Todo, err error) {
	err = s.live(func(tx *memoryTx) (err error) {
		todo, err = tx.GetByID(ctx, id)
		return
	})
	return
}

func (s *MemoryStore) Update(ctx context.Context, todo *entities.Todo) error {
	return s.live(func(tx *memoryTx) error { return tx.Update(ctx, todo) })
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	return s.live(func(tx *memoryTx) error { return tx.Delete(ctx, id) })
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context, repo ports.TodoRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	work := &memoryTx{rows: maps.Clone(s.rows), nextID: s.nextID}
	if err := fn(ctx, work); err != nil {
		return err
	}
	s.rows = work.rows
	s.nextID = work.nextID
	return nil
}

// live runs fn directly on the stored rows
func (s *MemoryStore) live(fn func(tx *memoryTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	tx := &memoryTx{rows: s.rows, nextID: s.nextID}
	err := fn(tx)
	s.nextID = tx.nextID
	return err
}

type memoryTx struct {
	rows   map[int64]entities.Todo
	nextID int64
}

func (tx *memoryTx) List(ctx context.Context) ([]*entities.Todo, error) {
	todos := make([]*entities.Todo, 0, len(tx.rows))
	for _, row := range tx.rows {
		row := row
		todos = append(todos, &row)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (tx *memoryTx) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	tx.nextID++
	row := *todo
	row.ID = tx.nextID
	tx.rows[row.ID] = row
	return &row, nil
}

func (tx *memoryTx) GetByID(ctx context.Context, id int64) (*entities.Todo, error) {
	row, ok := tx.rows[id]
	if !ok {
		return nil, entities.ErrTodoNotFound
	}
	return &row, nil
}

func (tx *memoryTx) Update(ctx context.Context, todo *entities.Todo) error {
	existing, ok := tx.rows[todo.ID]
	if !ok {
		return entities.ErrTodoNotFound
	}
	existing.Title = todo.Title
	existing.Body = todo.Body
	existing.StartTime = todo.StartTime
	tx.rows[todo.ID] = existing
	return nil
}

func (tx *memoryTx) Delete(ctx context.Context, id int64) error {
	if _, ok := tx.rows[id]; !ok {
		return entities.ErrTodoNotFound
	}
	delete(tx.rows, id)
	return nil
}
