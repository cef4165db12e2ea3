package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Entitlement errors
	ErrMsgInsufficientEntitlement = "insufficient entitlement"

	// Spin errors
	ErrMsgSpinInProgress          = "spin already in progress"
	ErrMsgRenderingSurfaceMissing = "rendering surface missing"

	// Payment intent errors
	ErrMsgUnknownIntent     = "unknown payment intent"
	ErrMsgInvalidTransition = "invalid state transition"
	ErrMsgInvalidMethod     = "invalid payment method"

	// Sector table errors
	ErrMsgEmptySectorTable = "sector table is empty"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInsufficientEntitlement means the player has neither a free spin nor
	// enough balance. Recoverable: the caller routes the player into the
	// payment flow.
	ErrInsufficientEntitlement = errors.New(ErrMsgInsufficientEntitlement)

	// ErrSpinInProgress is returned while a previous spin has not settled yet.
	// The re-entrancy guard, not a failure: nothing was charged.
	ErrSpinInProgress = errors.New(ErrMsgSpinInProgress)

	// ErrRenderingSurfaceMissing means the surface that animates the wheel
	// could not be located. The spin aborts before any debit.
	ErrRenderingSurfaceMissing = errors.New(ErrMsgRenderingSurfaceMissing)

	// Payment intent errors
	ErrUnknownIntent     = errors.New(ErrMsgUnknownIntent)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrInvalidMethod     = errors.New(ErrMsgInvalidMethod)

	// Sector table errors
	ErrEmptySectorTable = errors.New(ErrMsgEmptySectorTable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
