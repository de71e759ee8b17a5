package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/infrastructure/logger"
	"github.com/taskmaster/todo/internal/ports"
)

// TodoHandler handles todo requests
type TodoHandler struct {
	todoService ports.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService ports.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger.WithComponent("todo_handler"),
	}
}

// ListQuery holds the accepted query parameters of GET /todo. Desc does not filter.
type ListQuery struct {
	Desc string `query:"desc" validate:"max=1024"`
}

// ListTodos handles GET /todo
func (h *TodoHandler) ListTodos(c echo.Context) error {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	h.logger.Infow("List todos", "desc", q.Desc)

	views, err := h.todoService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListResponse[entities.TodoView]{Msg: msgSuccess, Datas: views})
}

// CreateTodo handles POST /todo
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	req, err := bindTodoRequest(c)
	if err != nil {
		return err
	}
	h.logger.Infow("Create todo", "request", req.String())

	todo, err := h.todoService.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, DataResponse[*entities.Todo]{Msg: msgSuccess, Data: todo})
}

// UpdateTodo handles PUT /todo/:id
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindTodoRequest(c)
	if err != nil {
		return err
	}
	h.logger.Infow("Update todo", "todo_id", id, "request", req.String())

	todo, err := h.todoService.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[*entities.Todo]{Msg: msgSuccess, Data: todo})
}

// DeleteTodo handles DELETE /todo/:id
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[*entities.Todo]{Msg: msgSuccess, Data: todo})
}

func bindTodoRequest(c echo.Context) (entities.TodoRequest, error) {
	var req entities.TodoRequest
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, &req); err != nil {
		return req, err
	}
	return req, nil
}

func parseID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id").SetInternal(err)
	}
	return id, nil
}
