package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures into the generic taxonomy the
// rest of the application programs against.
type ErrorKind int

const (
	// KindNone marks an error the provider does not recognize as its own.
	KindNone ErrorKind = iota
	// KindSystem is a recognized but otherwise unclassified provider
	// failure.
	KindSystem
	KindConnection
	KindAuthentication
	KindTimeout
	KindIllegalArgument
	KindIllegalState
	KindQueryInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSystem:
		return "system"
	case KindConnection:
		return "connection"
	case KindAuthentication:
		return "authentication"
	case KindTimeout:
		return "timeout"
	case KindIllegalArgument:
		return "illegal-argument"
	case KindIllegalState:
		return "illegal-state"
	case KindQueryInvalid:
		return "query-invalid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AccessError wraps a provider failure with its taxonomy kind.
type AccessError struct {
	kind  ErrorKind
	cause error
}

func NewAccessError(kind ErrorKind, cause error) *AccessError {
	return &AccessError{kind: kind, cause: cause}
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cache access error (%s): %v", e.kind, e.cause)
}

func (e *AccessError) Unwrap() error { return e.cause }

func (e *AccessError) Kind() ErrorKind { return e.kind }

// AsAccessError tries to transform err to an AccessError and return it
// with true. If it is not possible nil and false is returned.
func AsAccessError(err error) (*AccessError, bool) {
	var ae *AccessError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// ErrorTranslator is implemented by drivers that can classify their
// product's native errors.
type ErrorTranslator interface {
	// Kind classifies err, returning KindNone for errors the product does
	// not own.
	Kind(err error) ErrorKind

	// TranslateQuery takes a second look at an illegal-argument error and
	// reports whether it is really a query mistake. KindSystem means it
	// could only offer the generic classification.
	TranslateQuery(err error) ErrorKind
}

// TranslateIfPossible converts a provider error into an AccessError, or
// returns nil when no translation is available and the error should pass
// through untouched.
func TranslateIfPossible(tr ErrorTranslator, err error) error {
	if err == nil || tr == nil {
		return nil
	}
	switch kind := tr.Kind(err); kind {
	case KindNone:
		return nil
	case KindIllegalArgument:
		// Argument errors are only worth wrapping when they turn out to
		// be query mistakes; the generic wrap would hide more than it
		// tells.
		if qk := tr.TranslateQuery(err); qk != KindNone && qk != KindSystem {
			return NewAccessError(qk, err)
		}
		return nil
	default:
		return NewAccessError(kind, err)
	}
}

// TeardownError is one failed step of a cache factory teardown. The
// remaining steps still run; their failures accumulate alongside.
type TeardownError struct {
	Step string
	Err  error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("teardown step %s failed: %v", e.Step, e.Err)
}

func (e *TeardownError) Unwrap() error { return e.Err }

type TeardownErrors []*TeardownError

func (es TeardownErrors) Error() string {
	switch len(es) {
	case 0:
		return ""
	case 1:
		return es[0].Error()
	default:
		return fmt.Sprintf("multiple (%d) teardown errors: %s", len(es), es[0].Error())
	}
}

// AsTeardownErrors tries to transform err to TeardownErrors and return it
// with true. If it is not possible nil and false is returned.
func AsTeardownErrors(err error) (TeardownErrors, bool) {
	t := new(TeardownErrors)
	if errors.As(err, t) {
		return *t, true
	}
	return nil, false
}
