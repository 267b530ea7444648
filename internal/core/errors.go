package core

import (
	"errors"
	"fmt"
)

// ValidationError signals malformed or missing caller input. The reason is
// specific enough to be surfaced to the caller as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError signals a lookup for an identity that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %d", e.Entity, e.ID)
}

// AuthorizationError signals that the acting principal is neither the owner
// of the addressed records nor an admin.
type AuthorizationError struct {
	Principal string
	Owner     string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("principal %q is not allowed to act on data owned by %q", e.Principal, e.Owner)
}

// StorageError wraps a persistence collaborator failure. The core never
// retries these; they surface to the caller unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}
