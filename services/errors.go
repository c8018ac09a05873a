package services

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Kind classifies a service failure. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the typed failure returned by every service operation
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string // field-level detail for validation failures
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same Code so callers can use errors.Is with the sentinels below
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	// ErrUsernameTaken is returned by Register for both the pre-insert check and the unique constraint path
	ErrUsernameTaken = &Error{Kind: KindConflict, Code: "USERNAME_TAKEN", Message: "Username already registered"}

	// ErrInvalidCredentials is returned for unknown usernames and wrong passwords alike
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Incorrect username or password"}

	// ErrInvalidToken covers missing, malformed, expired and orphaned tokens
	ErrInvalidToken = &Error{Kind: KindUnauthorized, Code: "INVALID_TOKEN", Message: "Could not validate credentials"}

	ErrAdminRequired = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "Admin privileges required"}

	ErrOrderNotFound = &Error{Kind: KindNotFound, Code: "ORDER_NOT_FOUND", Message: "Order not found"}
)

// wrap returns a copy of e carrying cause, keeping the same Code
func (e *Error) wrap(cause error) *Error {
	out := *e
	out.Err = cause
	return &out
}

// KindOf returns the Kind of err, KindInternal for untyped errors
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

func internalError(message string, err error) error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// validationError turns ozzo-validation output into a KindValidation error
func validationError(err error) error {
	fields := map[string]string{}

	var errs validation.Errors
	if errors.As(err, &errs) {
		for key, fieldErr := range errs {
			if fieldErr != nil {
				fields[key] = fieldErr.Error()
			}
		}
	} else {
		fields["_"] = err.Error()
	}

	return &Error{
		Kind:    KindValidation,
		Code:    "VALIDATION_ERROR",
		Message: "Invalid request data",
		Fields:  fields,
	}
}
