package domain

// Typed event payloads for type safety

// SpinResolvedPayloadV1 is the typed payload for spin settlement events.
type SpinResolvedPayloadV1 struct {
	UserID      string `json:"user_id"`
	SectorIndex int    `json:"sector_index"`
	Won         bool   `json:"won"`
	PrizeLabel  string `json:"prize_label,omitempty"`
	PrizeIcon   string `json:"prize_icon,omitempty"`
	Code        string `json:"code,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// SpinDeniedPayloadV1 is the typed payload for denied spin requests.
type SpinDeniedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// PaymentIntentPayloadV1 is the typed payload for payment intent lifecycle
// events (created, confirmed, rejected).
type PaymentIntentPayloadV1 struct {
	IntentID       string `json:"intent_id"`
	UserID         string `json:"user_id"`
	Amount         int    `json:"amount"`
	SpinsRequested int    `json:"spins_requested"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	Timestamp      int64  `json:"timestamp"`
}
