package domainerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a domain failure so the API layer can map it to a status
// without parsing messages.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindNotFound      Kind = "not_found"
)

type Error struct {
	kind    Kind
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Message is the caller-facing text without the wrapped cause.
func (e *Error) Message() string {
	return e.message
}

func New(kind Kind, message string) error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, err error, message string) error {
	return &Error{kind: kind, message: message, cause: err}
}

func NewValidation(message string) error {
	return New(KindValidation, message)
}

func NewAuthorization(message string) error {
	return New(KindAuthorization, message)
}

func NewConflict(message string) error {
	return New(KindConflict, message)
}

func NewNotFound(message string) error {
	return New(KindNotFound, message)
}

func KindOf(err error) (Kind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.kind, true
	}
	return "", false
}

func is(err error, kind Kind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}

func IsValidation(err error) bool    { return is(err, KindValidation) }
func IsAuthorization(err error) bool { return is(err, KindAuthorization) }
func IsConflict(err error) bool      { return is(err, KindConflict) }
func IsNotFound(err error) bool      { return is(err, KindNotFound) }
