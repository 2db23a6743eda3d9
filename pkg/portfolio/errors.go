package portfolio

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotFound indicates the requested record does not exist in its collection
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials indicates a failed login. Wrong username and wrong
	// password produce this same value so callers cannot tell which it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoToken indicates a mutating request carried no access token
	ErrNoToken = errors.New("access token not provided")

	// ErrTokenInvalid indicates a present but expired, malformed or
	// wrongly-signed access token
	ErrTokenInvalid = errors.New("access token invalid or expired")

	// ErrInvalidReference indicates a file reference that does not resolve
	// under the managed upload root
	ErrInvalidReference = errors.New("file reference outside upload root")
)

// ValidationError reports a missing or malformed required field or file.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Reason)
}

// StorageError wraps a document or file store failure with the operation
// that triggered it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
