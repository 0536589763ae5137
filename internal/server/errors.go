package server

import (
	"errors"
	"net/http"

	"webstore/internal/storage"
)

type httpError struct {
	Status  int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

var (
	errNotFound = &httpError{
		Status:  http.StatusNotFound,
		Message: "Not found",
	}

	errMethodNotAllowed = &httpError{
		Status:  http.StatusMethodNotAllowed,
		Message: "Method not allowed",
	}

	errPathEscape = &httpError{
		Status:  http.StatusBadRequest,
		Message: "Path escapes storage root",
	}

	errIsDirectory = &httpError{
		Status:  http.StatusConflict,
		Message: "Path is a directory",
	}
)

// classify maps an error returned by the store onto the response it produces.
// Anything unrecognised is a filesystem failure reported with its own text.
func classify(err error) *httpError {
	var httpErr *httpError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, storage.ErrPathEscape):
		return errPathEscape
	case errors.Is(err, storage.ErrNotFound):
		return errNotFound
	case errors.Is(err, storage.ErrIsDirectory):
		return errIsDirectory
	default:
		return &httpError{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}
	}
}
