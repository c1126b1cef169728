package domain

import (
	"errors"
	"fmt"
)

// The simulation reports four failure families. All of them surface as
// values in structured outcomes; none of them abort the caller.

// NotFoundError indicates a referenced identifier is absent from its
// collection.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidActionError indicates a delta producer received an unknown verb.
type InvalidActionError struct {
	Action string
}

func (e InvalidActionError) Error() string {
	if e.Action == "" {
		return "invalid action"
	}
	return fmt.Sprintf("invalid action %q", e.Action)
}

// UnauthorizedError indicates the authorization gate denied an action.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// IntegrityError indicates a delta was rejected at commit time. The embedded
// result carries the blocking rule violations; the store is untouched.
type IntegrityError struct {
	Result Result
}

func (e IntegrityError) Error() string {
	if len(e.Result.Violations) == 0 {
		return "integrity violation"
	}
	v := e.Result.Violations[0]
	return fmt.Sprintf("integrity violation: %s", v.Message)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsUnauthorized reports whether err is (or wraps) an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var ua UnauthorizedError
	return errors.As(err, &ua)
}
