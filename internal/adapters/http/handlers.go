package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const msgSuccess = "Success"

// MessageResponse carries a bare message
type MessageResponse struct {
	Msg string `json:"msg"`
}

// DataResponse wraps a single entity
type DataResponse[T any] struct {
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// ListResponse wraps a sequence of entities
type ListResponse[T any] struct {
	Msg   string `json:"msg"`
	Datas []T    `json:"datas"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Path string `json:"path"`
}

// Index handles GET /
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Msg: "Hello World"})
}
