package domain

import "time"

// PaymentMethod is how the player claims to have paid. Method-specific
// presentation (card form, SBP phone, transfer instructions) lives entirely
// in the rendering layer; the tracker only records the tag.
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodSBP    PaymentMethod = "sbp"
	MethodManual PaymentMethod = "manual"
)

// Valid reports whether m is one of the known methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodSBP, MethodManual:
		return true
	}
	return false
}

// IntentStatus is the lifecycle state of a payment intent.
type IntentStatus string

const (
	IntentPending   IntentStatus = "pending"
	IntentConfirmed IntentStatus = "confirmed"
	IntentRejected  IntentStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s IntentStatus) Terminal() bool {
	return s == IntentConfirmed || s == IntentRejected
}

// PaymentIntent is a claimed-but-unverified payment awaiting manual
// confirmation by an administrator. Intents are never deleted by the game:
// the collection is the audit trail the admin process works from.
//
// Nothing here verifies payment authenticity. Confirmation is a human
// decision made over an out-of-band channel; this is a trust boundary, not
// a technical one.
type PaymentIntent struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	Amount         int           `json:"amount"`
	SpinsRequested int           `json:"spins_requested"`
	Method         PaymentMethod `json:"method"`
	Status         IntentStatus  `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}
