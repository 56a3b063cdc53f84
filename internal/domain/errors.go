package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidName is returned when a deployment name leaves its network directory
	ErrInvalidName = errors.New("invalid deployment name")

	// ErrNetworkNotConfigured is returned when a network has no entry in fundops.toml
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrUnknownAccount is returned when a named account can't be resolved
	ErrUnknownAccount = errors.New("unknown account")

	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrCyclicDependency is returned when deploy steps depend on each other
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// PreconditionError is returned by a transaction guard. Nothing has been sent
// when it is returned.
type PreconditionError struct {
	Check  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition %s failed: %s", e.Check, e.Reason)
}

// NewPreconditionError creates a precondition error for the named check
func NewPreconditionError(check, format string, args ...any) *PreconditionError {
	return &PreconditionError{Check: check, Reason: fmt.Sprintf(format, args...)}
}

// RevertError wraps a failed on-chain call or a mined transaction with failed status
type RevertError struct {
	Method string
	TxHash string
	Reason string
	Err    error
}

func (e *RevertError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s reverted", e.Method)
	if e.TxHash != "" {
		fmt.Fprintf(&b, " (tx %s)", e.TxHash)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// DeploymentNotFoundErr carries the closest known names for a missing deployment
type DeploymentNotFoundErr struct {
	Network     string
	Name        string
	Suggestions []string
}

func (e DeploymentNotFoundErr) Error() string {
	msg := fmt.Sprintf("no deployment named %q on %s", e.Name, e.Network)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" - did you mean:\n  - %s", strings.Join(e.Suggestions, "\n  - "))
	}
	return msg
}

func (e DeploymentNotFoundErr) Is(target error) bool {
	return target == ErrNotFound
}
