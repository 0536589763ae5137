package storage

import "errors"

var (
	// ErrPathEscape is returned when a requested path resolves outside the storage root.
	ErrPathEscape = errors.New("path escapes storage root")

	// ErrNotFound is returned when an operation requires a resource that does not exist.
	ErrNotFound = errors.New("resource does not exist")

	// ErrIsDirectory is returned when a file operation targets an existing directory.
	ErrIsDirectory = errors.New("resource is a directory")
)
