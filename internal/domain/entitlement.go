package domain

// EntitlementState is the per-user spending state. Both fields are >= 0 at
// all times; any operation that would break that must fail before mutating.
type EntitlementState struct {
	BalanceMinorUnits int `json:"balance"`
	FreeSpins         int `json:"free_spins"`
}

// UserState is the persisted per-user blob: entitlement plus spin history,
// stored under one key so every mutation flushes a consistent snapshot.
type UserState struct {
	EntitlementState
	History []HistoryRecord `json:"history"`
}
