package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/domain/temporal"
)

// createInput fixes the order of the presence checks: title, body, start_time.
type createInput struct {
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
}

// TodoValidator turns creation requests into new todos
type TodoValidator struct {
	validate *validator.Validate
	codec    *temporal.Codec
	now      func() time.Time
}

// NewTodoValidator creates a new validator. A nil now defaults to time.Now.
func NewTodoValidator(codec *temporal.Codec, now func() time.Time) *TodoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if now == nil {
		now = time.Now
	}
	return &TodoValidator{validate: v, codec: codec, now: now}
}

// ValidateAndBuild checks req and builds a todo with no id yet.
func (v *TodoValidator) ValidateAndBuild(req entities.TodoRequest) (*entities.Todo, error) {
	in := createInput{
		Title:     deref(req.Title),
		Body:      deref(req.Body),
		StartTime: deref(req.StartTime),
	}
	if err := v.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, entities.MissingField(fieldErrs[0].Field())
		}
		return nil, err
	}

	start, err := v.codec.ParseNormalized(in.StartTime)
	if err != nil {
		return nil, entities.InvalidTimestamp(err)
	}

	return &entities.Todo{
		Title:     in.Title,
		Body:      in.Body,
		StartTime: start,
		CreatedAt: v.now(),
	}, nil
}

// CheckUpdate fails fast on an unparsable start_time before any store access.
func (v *TodoValidator) CheckUpdate(req entities.TodoRequest) error {
	if req.StartTime == nil {
		return nil
	}
	if _, err := v.codec.Parse(*req.StartTime); err != nil {
		return entities.InvalidTimestamp(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
