package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HTTPError is the JSON error body of the status server.
type HTTPError struct {
	Code  int    `json:"status"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{Code: code, Type: errorType, Title: title}
}

// NewFromEcho converts an echo error into an HTTPError.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return NewHTTPError(e.Code, ErrorTypeGeneric, http.StatusText(e.Code))
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// HTTPErrorHandler writes err as an HTTPError. Unknown errors become a generic 500 without
// their message.
func HTTPErrorHandler(err error, c echo.Context) {
	var (
		httpErr *HTTPError
		echoErr *echo.HTTPError
	)

	switch {
	case errors.As(err, &httpErr):
	case errors.As(err, &echoErr):
		httpErr = NewFromEcho(echoErr)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error in status handler")
		httpErr = NewFromEcho(echo.ErrInternalServerError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.Code)
	} else {
		err = c.JSON(httpErr.Code, httpErr)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}
