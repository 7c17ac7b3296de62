package services

import (
	"errors"
	"fmt"

	"bazaar-api/models"
	"bazaar-api/repositories"
)

type Kind string

const (
	KindInternal           Kind = "internal"
	KindInvalidInput       Kind = "invalid_input"
	KindNotFound           Kind = "not_found"
	KindOutOfStock         Kind = "out_of_stock"
	KindEmptyCart          Kind = "empty_cart"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindAlreadyExists      Kind = "already_exists"
	KindConflict           Kind = "conflict"
	KindStoreUnavailable   Kind = "store_unavailable"
)

// Error is returned by every service operation that fails. Message is safe to
// show to API clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
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

// Is matches on Kind, so errors.Is(err, &Error{Kind: KindNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// storeError classifies a repository failure. notFound is the client message
// used when the document is missing.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: notFound, Err: err}
	case errors.Is(err, repositories.ErrConflict):
		return &Error{Kind: KindConflict, Message: "the resource was modified concurrently, retry the request", Err: err}
	case errors.Is(err, repositories.ErrDuplicate):
		return &Error{Kind: KindAlreadyExists, Message: "resource already exists", Err: err}
	default:
		return &Error{Kind: KindStoreUnavailable, Message: "store unavailable", Err: err}
	}
}

func requireIdentity(identity models.Identity) error {
	if identity.UserID == "" {
		return newError(KindUnauthenticated, "Unauthorized")
	}
	return nil
}
