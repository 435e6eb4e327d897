// Package apperror defines the application's error taxonomy.
//
// Every error that crosses a layer boundary is either an *AppError carrying a
// Kind, or an unclassified error that the HTTP layer reports as Internal.
// KindOf is the single place that answers "what kind of failure is this?".
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
)

// Kind enumerates the failure classes the HTTP layer knows how to translate.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type AppError struct {
	Kind    Kind
	Err     error  // sentinel for errors.Is
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a well-formed key with no matching row,
// e.g. NotFound("article", "999") -> "article 999 not found".
func NotFound(resource, key string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, key string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s %s already exists", resource, key),
	}
}

// KindOf walks the error chain and returns the Kind of the first *AppError.
// Anything else, including nil-free unknown errors, is KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err. Internal errors never
// expose their text.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal Server Error"
}
