package errs

import (
	"fmt"
	"strings"
)

// Typed domain errors. Handlers and consumers match these structurally with
// errors.As; nothing in the service is allowed to string-match error text.

// ValidationError signals malformed input (amount, description, quantity,
// currency, ids).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// CurrencyMismatchError signals arithmetic or comparison across currencies.
type CurrencyMismatchError struct {
	Operation string
	Left      string
	Right     string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("cannot %s different currencies: %s and %s", e.Operation, e.Left, e.Right)
}

// NotFoundError signals an aggregate missing by id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError signals a uniqueness violation (one budget per service order,
// one payment per budget).
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists for %s", e.Resource, e.Key)
}

// InvalidStatusTransitionError carries the full transition context so callers
// never need to parse a message.
type InvalidStatusTransitionError struct {
	Entity    string
	Current   string
	Attempted string
	Allowed   []string
}

func (e *InvalidStatusTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("invalid %s status transition from %s to %s (allowed: %s)", e.Entity, e.Current, e.Attempted, allowed)
}

// GatewayError wraps a payment-provider failure.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// PublishError wraps an event-bus failure. The aggregate state is already
// persisted when this surfaces; the event is lost unless the caller retries.
type PublishError struct {
	Event string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %s event: %v", e.Event, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
