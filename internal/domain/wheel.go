package domain

// Sector is one slice of the wheel. Immutable once loaded; its index in the
// sector table defines its angular position on the wheel.
type Sector struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	IsWinning bool   `json:"is_winning"`
	ColorHint string `json:"color_hint,omitempty"`
}

// SpinOutcome is produced fresh per spin and lives only until it is settled
// into the history log.
type SpinOutcome struct {
	SectorIndex int    `json:"sector_index"`
	IsWinning   bool   `json:"is_winning"`
	PrizeLabel  string `json:"prize_label,omitempty"`
	PrizeIcon   string `json:"prize_icon,omitempty"`
	Code        string `json:"code,omitempty"`
}
