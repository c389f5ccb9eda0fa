package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrConflict           = errors.New("conflict")
)

// ValidationError reports a missing or malformed field on create/update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an operation on an unknown id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type InvalidTransitionError struct {
	ID   string
	From CampaignStatus
	To   CampaignStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s: campaign %q cannot leave status %s", ErrInvalidTransition, e.ID, e.From)
	}
	return fmt.Sprintf("%s: campaign %q %s -> %s", ErrInvalidTransition, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// InvariantViolationError is returned when a counter write would break
// sent <= total or success+failed <= sent.
type InvariantViolationError struct {
	ID     string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: campaign %q: %s", ErrInvariantViolation, e.ID, e.Reason)
}

func (e *InvariantViolationError) Is(target error) bool { return target == ErrInvariantViolation }

// ConflictError is returned when an entity cannot be removed because
// another entity still refers to it.
type ConflictError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %q %s", ErrConflict, e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
