package service

import "fmt"

// ErrKind classifies an AppError for status mapping.
type ErrKind int

const (
	KindValidation ErrKind = iota
	KindConflict
	KindNotFound
	KindAuthorization
	KindStorage
)

// AppError carries a short user-facing message and a categorical kind.
// Storage internals never reach the caller; wrap them with ErrStorage.
type AppError struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ErrValidation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func ErrConflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func ErrAuthorization(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

func ErrStorage(err error) *AppError {
	return &AppError{Kind: KindStorage, Msg: "storage error", Err: err}
}
