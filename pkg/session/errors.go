package session

import (
	"errors"
	"strings"
)

var (
	// ErrBadSignature indicates the session cookie failed signature verification
	ErrBadSignature = errors.New("session.bad_signature")

	// ErrNotRecoverable indicates the store or signer malfunctioned
	ErrNotRecoverable = errors.New("session.not_recoverable")

	// ErrNotFound is returned by stores when no record exists for an id
	ErrNotFound = errors.New("session.not_found")

	// ErrInvalidData indicates a record without an id was passed to a store
	ErrInvalidData = errors.New("session.invalid_data")

	// ErrInvalidConfig indicates the manager configuration is incomplete
	ErrInvalidConfig = errors.New("session.invalid_config")

	// ErrGroupUnsupported indicates the store cannot retire sessions by group
	ErrGroupUnsupported = errors.New("session.group_unsupported")

	// ErrIDGeneration indicates the random source failed
	ErrIDGeneration = errors.New("session.id_generation_failed")
)

// Kind classifies faults reported by Get and Set.
type Kind uint8

const (
	KindBadSignature Kind = iota + 1
	KindNotRecoverable
)

func (k Kind) String() string {
	switch k {
	case KindBadSignature:
		return "bad_signature"
	case KindNotRecoverable:
		return "not_recoverable"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	if k == KindBadSignature {
		return ErrBadSignature
	}
	return ErrNotRecoverable
}

// Error is a single classified fault. It matches its kind sentinel
// and the underlying cause with errors.Is.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.sentinel().Error()
	}
	return e.Kind.sentinel().Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// Errors is an ordered set of faults raised during a single Get.
// Both kinds may be present at once.
type Errors []*Error

func (es Errors) Error() string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (es Errors) Unwrap() []error {
	out := make([]error, 0, len(es))
	for _, e := range es {
		out = append(out, e)
	}
	return out
}

// Has reports whether a fault of the given kind is present.
func (es Errors) Has(kind Kind) bool {
	for _, e := range es {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Err returns nil for an empty set so callers never see a typed nil.
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// HasKind reports whether err carries a fault of the given kind.
func HasKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var es Errors
	if errors.As(err, &es) {
		return es.Has(kind)
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
