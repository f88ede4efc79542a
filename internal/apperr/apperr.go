// Package apperr defines the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status is the HTTP status a kind maps to unless overridden.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Reasons returned to clients.
const (
	ReasonValidation          = "ValidationFailed"
	ReasonMissingToken        = "MissingToken"
	ReasonInvalidToken        = "InvalidToken"
	ReasonExpired             = "Expired"
	ReasonInvalidCredentials  = "InvalidCredentials"
	ReasonNotActivated        = "NotActivated"
	ReasonRoleRequired        = "RoleRequired"
	ReasonNotOwner            = "NotOwner"
	ReasonSelfDemotion        = "SelfDemotion"
	ReasonSelfAction          = "SelfAction"
	ReasonDuplicateEmail      = "DuplicateEmail"
	ReasonDuplicateUsername   = "DuplicateUsername"
	ReasonProfileExists       = "ProfileExists"
	ReasonDuplicateConnection = "DuplicateConnection"
	ReasonSelfConnect         = "SelfConnect"
	ReasonBlocked             = "Blocked"
	ReasonPollClosed          = "PollClosed"
	ReasonInvalidOption       = "InvalidOption"
	ReasonInvalidTransition   = "InvalidTransition"
	ReasonNotFound            = "NotFound"
	ReasonNoChanges           = "NoChanges"
	ReasonInternal            = "Internal"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Fields  []FieldError
	// Required and Actual describe a failed role gate.
	Required []string
	Actual   string
	// Status overrides Kind.Status when non-zero.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.Status()
}

// WithStatus returns a copy of e rendered with the given HTTP status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Reason: ReasonValidation, Message: message, Fields: fields}
}

// Invalid is a validation failure with its own reason.
func Invalid(reason, message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Reason: reason, Message: message, Fields: fields}
}

func Unauthorized(reason, message string) *Error {
	return &Error{Kind: KindUnauthorized, Reason: reason, Message: message}
}

func Forbidden(reason, message string, required []string, actual string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Message: message, Required: required, Actual: actual}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Reason: ReasonNotFound, Message: message}
}

func NoChanges() *Error {
	return &Error{Kind: KindNotFound, Reason: ReasonNoChanges, Message: "no updatable fields supplied"}
}

func Conflict(reason, message string) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Reason: ReasonInternal, Message: "internal server error", Err: err}
}

// From returns err as an *Error, wrapping anything unknown as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HasReason reports whether err is an *Error carrying reason.
func HasReason(err error, reason string) bool {
	var e *Error
	return errors.As(err, &e) && e.Reason == reason
}
