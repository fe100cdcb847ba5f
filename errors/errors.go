// Package errors defines the sentinel errors shared across the backend.
// Transport code maps them to status codes at the boundary; everything
// below the handlers only wraps and checks them with errors.Is.
package errors

import "fmt"

var (
	// ErrUnauthenticated signals a missing, expired or malformed credential.
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	// ErrNotFound signals that the requested entity has no stored data.
	ErrNotFound = fmt.Errorf("not found")
	// ErrInvalidArgument signals a caller mistake (bad limit, sender == receiver, ...).
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	// ErrStorage signals an I/O failure in the persistence layer.
	ErrStorage = fmt.Errorf("storage failure")
	// ErrInternal signals a broken invariant inside the aggregation engine.
	ErrInternal = fmt.Errorf("internal error")
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)
