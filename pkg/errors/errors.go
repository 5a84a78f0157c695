package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrValidation
	ErrDatabase
	ErrConnection
	ErrInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "not_found"
	case ErrBadRequest:
		return "bad_request"
	case ErrValidation:
		return "validation"
	case ErrDatabase:
		return "database"
	case ErrConnection:
		return "connection"
	default:
		return "internal"
	}
}

// Coder is implemented by every error in the taxonomy.
type Coder interface {
	error
	Code() ErrorCode
}

// AppError represents an application error that does not fit a more
// specific kind, such as a malformed request.
type AppError struct {
	ErrCode ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Code() ErrorCode {
	return e.ErrCode
}

// ValidationError reports an input field that violated a rule. It is
// raised before any storage call is made.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s violates %s", e.Field, e.Rule)
}

func (e *ValidationError) Code() ErrorCode {
	return ErrValidation
}

// NotFoundError reports a missing entity, either the target of a read,
// update or delete, or a reference named by a write.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Code() ErrorCode {
	return ErrNotFound
}

// DatabaseError wraps a storage failure outside the caller's control.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("database error: %v", e.Err)
	}
	return fmt.Sprintf("database error: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func (e *DatabaseError) Code() ErrorCode {
	return ErrDatabase
}

// ConnectionError reports a failure to open the database connection.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) Code() ErrorCode {
	return ErrConnection
}

// Error constructors
func NewValidation(field, rule string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule}
}

func NewNotFound(entity string, key any) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		ErrCode: ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		ErrCode: ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func NewConnection(err error) *ConnectionError {
	return &ConnectionError{Err: err}
}

// NewDatabase wraps err as a DatabaseError. An err that already carries a
// DatabaseError is returned as is so the original operation is kept.
func NewDatabase(op string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if stderrors.As(err, &dbErr) {
		return err
	}
	return &DatabaseError{Op: op, Err: err}
}

// CodeOf returns the code of the first error in err's chain that carries
// one, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var c Coder
	if stderrors.As(err, &c) {
		return c.Code()
	}
	return ErrInternal
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return stderrors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return stderrors.As(err, &e)
}

func IsDatabase(err error) bool {
	var e *DatabaseError
	return stderrors.As(err, &e)
}

func IsConnection(err error) bool {
	var e *ConnectionError
	return stderrors.As(err, &e)
}
