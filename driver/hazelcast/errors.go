package hazelcast

import (
	"context"
	"errors"

	"github.com/hazelcast/hazelcast-go-client/hzerrors"

	"github.com/gemgrid/gridconfig/client"
)

// ErrInvalidInterestPattern marks a regex interest whose pattern does not
// compile. It surfaces before the cluster is asked anything.
var ErrInvalidInterestPattern = errors.New("invalid interest pattern")

// Kind classifies the product's native errors into the generic taxonomy.
// Errors Hazelcast does not own come back as KindNone so callers can pass
// them through untouched.
func (d *Driver) Kind(err error) client.ErrorKind {
	switch {
	case err == nil:
		return client.KindNone
	case errors.Is(err, ErrInvalidInterestPattern):
		return client.KindIllegalArgument
	case errors.Is(err, hzerrors.ErrIllegalArgument):
		return client.KindIllegalArgument
	case errors.Is(err, hzerrors.ErrAuthentication):
		return client.KindAuthentication
	case errors.Is(err, hzerrors.ErrClientOffline), errors.Is(err, hzerrors.ErrClientNotActive), errors.Is(err, hzerrors.ErrIO):
		return client.KindConnection
	case errors.Is(err, hzerrors.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return client.KindTimeout
	case errors.Is(err, hzerrors.ErrIllegalState):
		return client.KindIllegalState
	default:
		return client.KindNone
	}
}

// TranslateQuery takes the second look at an argument error: a rejected
// interest pattern is a query mistake, everything else only gets the
// generic classification.
func (d *Driver) TranslateQuery(err error) client.ErrorKind {
	switch {
	case err == nil:
		return client.KindNone
	case errors.Is(err, ErrInvalidInterestPattern):
		return client.KindQueryInvalid
	default:
		return client.KindSystem
	}
}
