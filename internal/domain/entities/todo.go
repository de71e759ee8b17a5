package entities

import (
	"fmt"
	"time"

	"github.com/taskmaster/todo/internal/domain/temporal"
)

// Todo represents a persisted todo row
type Todo struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (t Todo) String() string {
	return fmt.Sprintf("Todo[id=%d, title=%s, body=%s, start_time=%s, created_at=%s]",
		t.ID, t.Title, t.Body, t.StartTime, t.CreatedAt)
}

// TodoView is the list representation with display-formatted timestamps
type TodoView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	StartTime string `json:"start_time"`
	CreatedAt string `json:"created_at"`
}

// View renders t for output
func (t Todo) View(codec *temporal.Codec) TodoView {
	return TodoView{
		ID:        t.ID,
		Title:     t.Title,
		Body:      t.Body,
		StartTime: codec.Format(t.StartTime),
		CreatedAt: codec.Format(t.CreatedAt),
	}
}

// TodoRequest is the inbound body for create and update. Nil means absent.
type TodoRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	StartTime *string `json:"start_time"`
}

func (r TodoRequest) String() string {
	return fmt.Sprintf("TodoRequest[title=%s, body=%s, start_time=%s]",
		orNone(r.Title), orNone(r.Body), orNone(r.StartTime))
}

func orNone(s *string) string {
	if s == nil {
		return "`None`"
	}
	return *s
}

// Merge returns target with every present field of r applied.
// Empty strings are accepted here, unlike on creation.
func (r TodoRequest) Merge(codec *temporal.Codec, target Todo) (Todo, error) {
	merged := target
	if r.Title != nil {
		merged.Title = *r.Title
	}
	if r.Body != nil {
		merged.Body = *r.Body
	}
	if r.StartTime != nil {
		start, err := codec.ParseNormalized(*r.StartTime)
		if err != nil {
			return target, InvalidTimestamp(err)
		}
		merged.StartTime = start
	}
	return merged, nil
}
