package apperror

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// AppError is a domain error carrying the request field it applies to.
// Handlers serialize it as {"<field>": "<message>"} the same way the API
// reports every per-field validation failure.
type AppError struct {
	Err     error  // sentinel category, matched with errors.Is
	Field   string // request field the error is attached to
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Field: field, Message: message}
}

func NotFound(field, message string) *AppError {
	return &AppError{Err: ErrNotFound, Field: field, Message: message}
}

func Conflict(field, message string) *AppError {
	return &AppError{Err: ErrConflict, Field: field, Message: message}
}
