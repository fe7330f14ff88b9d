package domain

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors
var (
	// ErrArtifactCount indicates a provider directory does not hold exactly one box
	ErrArtifactCount = errors.New("expected exactly one box artifact")

	// ErrFilesystem indicates a directory or artifact could not be read
	ErrFilesystem = errors.New("filesystem error")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")
)

// ArtifactCountError is returned when a provider directory contains zero
// or several files ending in ArtifactSuffix.
type ArtifactCountError struct {
	Path  string
	Count int
}

func (e *ArtifactCountError) Error() string {
	return fmt.Sprintf("was expecting exactly one box in %s, found %d", e.Path, e.Count)
}

// Is lets errors.Is match ErrArtifactCount
func (e *ArtifactCountError) Is(target error) bool {
	return target == ErrArtifactCount
}

// NewArtifactCountError creates a new ArtifactCountError
func NewArtifactCountError(path string, count int) *ArtifactCountError {
	return &ArtifactCountError{
		Path:  path,
		Count: count,
	}
}

// FilesystemError represents a failure to list a directory or read an artifact
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

// Error does not repeat the op and path of a wrapped *fs.PathError
func (e *FilesystemError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, cause)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrFilesystem
func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}

// NewFilesystemError creates a new FilesystemError
func NewFilesystemError(op, path string, err error) *FilesystemError {
	return &FilesystemError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
