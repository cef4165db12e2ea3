package domain

import "time"

// HistoryKind classifies a settled spin.
type HistoryKind string

const (
	HistoryWin  HistoryKind = "win"
	HistoryLose HistoryKind = "lose"
)

// HistoryRecord is one settled spin. Owned exclusively by the history log;
// records are appended newest-first and never rewritten.
type HistoryRecord struct {
	Kind       HistoryKind `json:"kind"`
	Timestamp  time.Time   `json:"timestamp"`
	PrizeLabel string      `json:"prize_label,omitempty"`
	PrizeIcon  string      `json:"prize_icon,omitempty"`
	Code       string      `json:"code,omitempty"`
}
