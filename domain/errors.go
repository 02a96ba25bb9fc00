package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Typed errors for every failure the core can produce. Controllers map
// these to HTTP statuses with StatusFor; nothing below returns a
// generic untyped failure.

// ValidationError is malformed or out-of-range input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" && e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

// NotFoundError is a missing booking, coolie or user reference.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// UnauthorizedError is an actor lacking the role or ownership an
// operation requires.
type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg == "" {
		return "not authorized"
	}
	return e.Msg
}

// IneligibleCoolieError is an explicitly chosen coolie failing the
// approval/availability/station/platform check.
type IneligibleCoolieError struct {
	Reason string
}

func (e IneligibleCoolieError) Error() string {
	if e.Reason == "" {
		return "selected coolie is not eligible"
	}
	return fmt.Sprintf("selected coolie is not eligible: %s", e.Reason)
}

// NoCoolieAvailableError means no coolie satisfied the matching
// criteria. The caller must resubmit with different criteria or wait.
type NoCoolieAvailableError struct {
	Station  string
	Platform int
}

func (e NoCoolieAvailableError) Error() string {
	if e.Station == "" {
		return "no available coolies found"
	}
	return fmt.Sprintf("no available coolies found for station %s, platform %d", e.Station, e.Platform)
}

// IllegalTransitionError is a status change that is not a permitted
// edge from the booking's current state, including transitions lost to
// a concurrent writer.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e IllegalTransitionError) Error() string {
	if e.From == "" || e.To == "" {
		return "illegal booking status transition"
	}
	return fmt.Sprintf("illegal booking status transition from %s to %s", e.From, e.To)
}

// ConcurrencyConflictError is a conditional write that failed because
// the record changed between read and write.
type ConcurrencyConflictError struct {
	Msg string
}

func (e ConcurrencyConflictError) Error() string {
	if e.Msg == "" {
		return "record was modified concurrently"
	}
	return e.Msg
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsIneligibleCoolie(err error) bool {
	var target IneligibleCoolieError
	return errors.As(err, &target)
}

func IsNoCoolieAvailable(err error) bool {
	var target NoCoolieAvailableError
	return errors.As(err, &target)
}

func IsIllegalTransition(err error) bool {
	var target IllegalTransitionError
	return errors.As(err, &target)
}

func IsConcurrencyConflict(err error) bool {
	var target ConcurrencyConflictError
	return errors.As(err, &target)
}

// StatusFor maps a domain error to the HTTP status controllers should
// respond with. Unknown errors are treated as internal.
func StatusFor(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsUnauthorized(err):
		return http.StatusForbidden
	case IsIneligibleCoolie(err):
		return http.StatusBadRequest
	case IsNoCoolieAvailable(err):
		return http.StatusNotFound
	case IsIllegalTransition(err):
		return http.StatusBadRequest
	case IsConcurrencyConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
