package checkin

import (
	"errors"
	"fmt"
)

// Kind classifies a check-in failure so the handler layer can surface a
// structured result instead of an opaque error. "Misconfigured" kinds
// (LocationNotFound, LocationNotConfigured) are deliberately distinct from
// DistanceExceeded so operators can tell setup problems apart from an
// employee who was simply too far away.
type Kind string

const (
	KindMissingUser           Kind = "MissingUser"
	KindAttemptInProgress     Kind = "AttemptInProgress"
	KindPermissionDenied      Kind = "PermissionDenied"
	KindPositionUnavailable   Kind = "PositionUnavailable"
	KindTimeout               Kind = "Timeout"
	KindLocationNotFound      Kind = "LocationNotFound"
	KindLocationNotConfigured Kind = "LocationNotConfigured"
	KindDistanceExceeded      Kind = "DistanceExceeded"
	KindNoActionAvailable     Kind = "NoActionAvailable"
	KindPersistenceFailure    Kind = "PersistenceFailure"
	KindDuplicateRecord       Kind = "DuplicateRecord"
	KindNetworkFailure        Kind = "NetworkFailure"
)

// ErrDuplicate is returned by RecordStore implementations when an append
// violates the one-success-per-(user, day, action) unique index.
var ErrDuplicate = errors.New("duplicate check-in record")

// Error carries a Kind alongside a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from an error chain; empty string if none.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
