package elastic

import (
	"errors"
	"fmt"
)

// ConnectionError means the request never produced a usable response:
// DNS failure, refused connection, timeout.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("elasticsearch: %s: connection failed: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AuthError means the store rejected the configured credentials (401/403).
type AuthError struct {
	Op     string
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("elasticsearch: %s: authentication failed (status %d)", e.Op, e.Status)
}

// ProtocolError means the store answered with an unexpected status or
// a body that could not be decoded.
type ProtocolError struct {
	Op     string
	Status int
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("elasticsearch: %s: unexpected response (status %d): %s", e.Op, e.Status, e.Reason)
}

// NotFoundError means the index no longer exists. Deletion callers treat
// it as already-deleted.
type NotFoundError struct {
	Index string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("elasticsearch: index '%s' not found", e.Index)
}

func IsConnection(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsProtocol(err error) bool {
	var e *ProtocolError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
