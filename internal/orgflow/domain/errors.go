package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of any transport. The HTTP layer
// maps kinds to status codes; nothing in the core does.
type Kind string

const (
	KindNotMember        Kind = "not_member"
	KindInsufficientRole Kind = "insufficient_role"
	KindAlreadyMember    Kind = "already_member"
	KindNotFound         Kind = "not_found"
	KindExpired          Kind = "expired"
	KindEmailMismatch    Kind = "email_mismatch"
	KindLastOwner        Kind = "last_owner"
	KindForbidden        Kind = "forbidden"
	KindStoreFailure     Kind = "store_failure"
	KindInvalid          Kind = "invalid"
	KindConflict         Kind = "conflict"
	KindUnauthenticated  Kind = "unauthenticated"
)

// Error is a sentinel carrying a Kind. Callers wrap it with context using
// fmt.Errorf("%w: ...") and test it with errors.Is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrNotMember        = &Error{Kind: KindNotMember, Message: "not a member of this organization"}
	ErrInsufficientRole = &Error{Kind: KindInsufficientRole, Message: "insufficient role"}
	ErrAlreadyMember    = &Error{Kind: KindAlreadyMember, Message: "already a member"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrExpired          = &Error{Kind: KindExpired, Message: "invite has expired"}
	ErrEmailMismatch    = &Error{Kind: KindEmailMismatch, Message: "invite was sent to a different email address"}
	ErrLastOwner        = &Error{Kind: KindLastOwner, Message: "organization must keep at least one owner"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrStoreFailure     = &Error{Kind: KindStoreFailure, Message: "store failure"}
	ErrInvalid          = &Error{Kind: KindInvalid, Message: "invalid request"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "conflict"}
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated, Message: "invalid credentials"}
)

// Errorf wraps a sentinel with a formatted reason.
func Errorf(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// StoreError wraps an underlying driver error as a StoreFailure while keeping
// the original error in the chain.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

// KindOf returns the Kind of the first domain error in err's chain, or the
// empty Kind when err is nil or carries no domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
