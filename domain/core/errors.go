package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrTypeNotFound      = fmt.Errorf("%w: type", ErrNotFound)
	ErrSpaceNotFound     = fmt.Errorf("%w: space", ErrNotFound)
	ErrEntityNotFound    = fmt.Errorf("%w: entity", ErrNotFound)
	ErrBlockNotFound     = fmt.Errorf("%w: block", ErrNotFound)
	ErrParameterNotFound = fmt.Errorf("%w: parameter", ErrNotFound)

	// Construction errors (tier 1: fail-fast, no partial value escapes)
	ErrTypeMismatch   = errors.New("port token mismatch")
	ErrRoleConstraint = errors.New("role constraint violation")
	ErrWiringFlow     = errors.New("wiring flow violation")
	ErrEmptyWiring    = errors.New("wiring list cannot be empty")

	// Registration errors (tier 2)
	ErrDuplicateName = errors.New("duplicate name")
	ErrSpecSealed    = errors.New("spec is sealed")
)

// NewTypeMismatchError reports a failed token-overlap requirement between
// two composed blocks, naming both token sets so the caller can see what
// failed to line up.
func NewTypeMismatchError(source, target string, out, in []string) error {
	return fmt.Errorf("%w: %s forward_out tokens %v share nothing with %s forward_in tokens %v",
		ErrTypeMismatch, source, out, target, in)
}

// NewRoleConstraintError reports an interface group forbidden for a role.
func NewRoleConstraintError(role, block, group string) error {
	return fmt.Errorf("%w: %s %q may not expose %s ports", ErrRoleConstraint, role, block, group)
}

// NewDuplicateNameError reports a second registration under the same name.
func NewDuplicateNameError(collection, name string) error {
	return fmt.Errorf("%w: %s %q already registered", ErrDuplicateName, collection, name)
}

// NewNotFoundError constructs a not-found error with context
func NewNotFoundError(resource string, name string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, name)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConstructionError(err error) bool {
	return errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrRoleConstraint) ||
		errors.Is(err, ErrWiringFlow) ||
		errors.Is(err, ErrEmptyWiring)
}

func IsRegistrationError(err error) bool {
	return errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrSpecSealed)
}
