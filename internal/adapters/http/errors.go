package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/todo/internal/domain/entities"
)

// StatusCode maps err to the status returned to the caller
func StatusCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		// a known path with another method is still an unmatched route
		if he.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound
		}
		return he.Code
	}

	switch entities.KindOf(err) {
	case entities.KindMissingField, entities.KindInvalidTimestamp:
		return http.StatusBadRequest
	case entities.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message shown to the caller for err. Server errors
// never expose the underlying store message.
func PublicMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if status == http.StatusNotFound {
			return http.StatusText(http.StatusNotFound)
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

// NewErrorResponse builds the error envelope for a request path
func NewErrorResponse(err error, path string) (int, ErrorResponse) {
	status := StatusCode(err)
	return status, ErrorResponse{Msg: PublicMessage(err, status), Path: path}
}
