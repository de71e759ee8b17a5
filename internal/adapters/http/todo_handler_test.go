package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/todo/internal/adapters/repository"
	"github.com/taskmaster/todo/internal/application/services"
	"github.com/taskmaster/todo/internal/domain/entities"
	"github.com/taskmaster/todo/internal/domain/temporal"
	"github.com/taskmaster/todo/internal/infrastructure/logger"
)

type structValidator struct {
	v *validator.Validate
}

func (sv structValidator) Validate(i interface{}) error {
	return sv.v.Struct(i)
}

type handlerFixture struct {
	echo    *echo.Echo
	handler *TodoHandler
	store   *repository.MemoryStore
}

func newHandlerFixture() handlerFixture {
	e := echo.New()
	e.Validator = structValidator{v: validator.New()}

	store := repository.NewMemoryStore()
	now := func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }
	svc := services.NewTodoServiceWithClock(store, temporal.DefaultCodec(), now, logger.NewNop())

	return handlerFixture{echo: e, handler: NewTodoHandler(svc, logger.NewNop()), store: store}
}

func (f handlerFixture) context(method, target, body string, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	if id != "" {
		c.SetPath("/todo/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func (f handlerFixture) create(t *testing.T, body string) entities.Todo {
	t.Helper()
	c, rec := f.context(http.MethodPost, "/todo", body, "")
	if err := f.handler.CreateTodo(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	var resp DataResponse[entities.Todo]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data
}

func TestCreateTodo(t *testing.T) {
	f := newHandlerFixture()

	c, rec := f.context(http.MethodPost, "/todo", `{"title":"Buy milk","body":"2%","start_time":"2024-01-15 09:00:00 +0700"}`, "")
	if err := f.handler.CreateTodo(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp DataResponse[entities.Todo]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Msg != "Success" {
		t.Fatalf("unexpected msg %q", resp.Msg)
	}
	if resp.Data.ID != 1 || resp.Data.Title != "Buy milk" || resp.Data.Body != "2%" {
		t.Fatalf("unexpected todo %s", resp.Data)
	}
	if !resp.Data.StartTime.Equal(time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start_time %s", resp.Data.StartTime)
	}
	if !strings.Contains(rec.Body.String(), `"start_time":"2024-01-15T09:00:00+07:00"`) {
		t.Fatalf("start_time should be rendered in the reference zone: %s", rec.Body.String())
	}
}

func TestCreateTodoMissingTitle(t *testing.T) {
	f := newHandlerFixture()

	c, _ := f.context(http.MethodPost, "/todo", `{"body":"b","start_time":"2024-01-15 09:00:00 +0700"}`, "")
	err := f.handler.CreateTodo(c)
	var e *entities.Error
	if !errors.As(err, &e) || e.Kind != entities.KindMissingField || e.Field != "title" {
		t.Fatalf("expected missing title, got %v", err)
	}
	if f.store.Len() != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestCreateTodoMalformedJSON(t *testing.T) {
	f := newHandlerFixture()

	c, _ := f.context(http.MethodPost, "/todo", `{"title":`, "")
	err := f.handler.CreateTodo(c)
	if StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUpdateTodoPartial(t *testing.T) {
	f := newHandlerFixture()
	created := f.create(t, `{"title":"X","body":"old","start_time":"2024-01-15 09:00:00 +0700"}`)

	c, rec := f.context(http.MethodPut, "/todo/1", `{"body":"updated body"}`, "1")
	if err := f.handler.UpdateTodo(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp DataResponse[entities.Todo]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Title != "X" || resp.Data.Body != "updated body" {
		t.Fatalf("unexpected todo %s", resp.Data)
	}
	if !resp.Data.StartTime.Equal(created.StartTime) {
		t.Fatal("start_time must be unchanged")
	}
}

func TestUpdateTodoInvalidID(t *testing.T) {
	f := newHandlerFixture()

	c, _ := f.context(http.MethodPut, "/todo/abc", `{"body":"x"}`, "abc")
	err := f.handler.UpdateTodo(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest || he.Message != "invalid id" {
		t.Fatalf("expected invalid id, got %v", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	f := newHandlerFixture()
	created := f.create(t, `{"title":"t","body":"b","start_time":"2024-01-15 09:00:00 +0700"}`)

	c, rec := f.context(http.MethodDelete, "/todo/1", "", "1")
	if err := f.handler.DeleteTodo(c); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var resp DataResponse[entities.Todo]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID != created.ID || resp.Data.Title != "t" {
		t.Fatalf("expected deleted snapshot, got %s", resp.Data)
	}
	if f.store.Len() != 0 {
		t.Fatal("row should be gone")
	}
}

func TestDeleteTodoNotFound(t *testing.T) {
	f := newHandlerFixture()

	c, _ := f.context(http.MethodDelete, "/todo/999", "", "999")
	err := f.handler.DeleteTodo(c)
	if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestListTodos(t *testing.T) {
	f := newHandlerFixture()

	c, rec := f.context(http.MethodGet, "/todo?desc=anything", "", "")
	if err := f.handler.ListTodos(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"datas":[]`) {
		t.Fatalf("empty list should render as an array: %s", rec.Body.String())
	}

	f.create(t, `{"title":"a","body":"b","start_time":"2024-01-15 09:00:00 +0700"}`)
	f.create(t, `{"title":"c","body":"d","start_time":"2024-01-16 09:00:00 +0700"}`)

	c, rec = f.context(http.MethodGet, "/todo", "", "")
	if err := f.handler.ListTodos(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var resp ListResponse[entities.TodoView]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Msg != "Success" || len(resp.Datas) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Datas[0].ID != 1 || resp.Datas[1].ID != 2 {
		t.Fatalf("expected ascending ids, got %+v", resp.Datas)
	}
}

func TestListTodosStoreFailure(t *testing.T) {
	f := newHandlerFixture()
	f.store.SetFailure(entities.ConnectionFailure(errors.New("dial tcp: connection refused")))

	c, _ := f.context(http.MethodGet, "/todo", "", "")
	err := f.handler.ListTodos(c)
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestIndex(t *testing.T) {
	f := newHandlerFixture()

	c, rec := f.context(http.MethodGet, "/", "", "")
	if err := Index(c); err != nil {
		t.Fatalf("index: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"msg":"Hello World"}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
