// internal/app/engine/collab/errors.go
package collab

import (
	"errors"
	"fmt"
)

// Kind classifies an engine rejection. Every rejection is local and
// deterministic; none are retried automatically.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindInvalidTransition   Kind = "invalid_transition"
	KindInvalidState        Kind = "invalid_state"
	KindDuplicatePending    Kind = "duplicate_pending"
	KindAlreadyMember       Kind = "already_member"
	KindNotMember           Kind = "not_member"
	KindCannotRemoveCreator Kind = "cannot_remove_creator"
)

// Error is a typed engine rejection. Callers branch on Kind; Message is
// safe to show to the end user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewError builds an engine rejection of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf is NewError with formatting.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of an engine rejection, or "" when err is
// not one (an infrastructure failure).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an engine rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
