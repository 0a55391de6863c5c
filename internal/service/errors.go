package service

import (
	"fmt"

	"leaguehq-backend/internal/domain"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindPermission
	KindNotFound
	KindConflict
	KindLimit
)

// Error is the caller-facing failure for every service operation. Kind drives
// the transport status mapping; Message is safe to show to the end user.
type Error struct {
	Kind        ErrorKind
	Message     string
	FieldErrors map[string]string
	LimitInfo   *domain.LimitInfo
}

func (e *Error) Error() string {
	return e.Message
}

func Permissionf(format string, args ...any) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Invalid reports per-field validation failures.
func Invalid(fieldErrors map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", FieldErrors: fieldErrors}
}

// LimitExceeded reports a quota gate rejection, carrying the usage snapshot
// so clients can render the current/max numbers.
func LimitExceeded(info domain.LimitInfo, message string) *Error {
	return &Error{Kind: KindLimit, Message: message, LimitInfo: &info}
}

// ErrAlreadyMember is returned by join paths when the user already belongs to
// the league. Invitation acceptance treats it as convergence, not failure.
var ErrAlreadyMember = &Error{Kind: KindConflict, Message: "user is already a member of this league"}
