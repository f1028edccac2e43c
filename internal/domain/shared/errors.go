package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Entity resolution errors

// UnresolvedEntityError reports an id that no longer resolves against the
// current world snapshot. It is transient: the plan is re-derived next tick.
type UnresolvedEntityError struct {
	*DomainError
	Kind string
	ID   string
}

func NewUnresolvedEntityError(kind, id string) *UnresolvedEntityError {
	return &UnresolvedEntityError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s %s does not resolve in the current snapshot", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}
