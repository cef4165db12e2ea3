package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Spin error messages
	ErrMsgGetStateFailed     = "Failed to get player state"
	ErrMsgGetHistoryFailed   = "Failed to get spin history"
	ErrMsgNotEnoughBalance   = "Not enough balance. Top up or wait for a free spin."
	ErrMsgSpinAlreadyRunning = "The wheel is already spinning"
	ErrMsgWheelUnavailable   = "The wheel is not available right now. Reopen the game and try again."

	// Payment error messages
	ErrMsgListIntentsFailed   = "Failed to list payment requests"
	ErrMsgUnknownIntent       = "Payment request not found"
	ErrMsgIntentAlreadyClosed = "Payment request is already closed"
	ErrMsgInvalidMethod       = "Unknown payment method"

	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
)

// Success messages for API responses
const (
	MsgIntentConfirmedSuccess = "Payment confirmed, entitlement credited"
	MsgIntentRejectedSuccess  = "Payment rejected"
)
