package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindValidation
	KindUnexpected
)

// Error is the single error type the usecase layer hands to delivery.
// The kind decides the HTTP status once, at the boundary.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFoundErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func ValidationErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ErrPatientNotFound(id string) *Error {
	return NotFoundErr("Patient not found: %s", id)
}

func ErrEmailExists(email string) *Error {
	return ConflictErr("Email already exists: %s", email)
}

// KindOf classifies any error; errors that did not come out of the
// taxonomy count as unexpected so internal detail never picks a status.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnexpected
}
