package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dsolodov/foodwheel/internal/domain"
)

// DefaultSectors returns the stock 9-sector wheel: three prizes separated by
// pairs of empty sectors, a 1-in-3 win rate.
func DefaultSectors() []domain.Sector {
	return []domain.Sector{
		{ID: 1, Label: "Classic Burger", Icon: "🍔", IsWinning: true, ColorHint: "#ff6b35"},
		{ID: 2, Label: "Empty", Icon: "❌", IsWinning: false, ColorHint: "#2d3436"},
		{ID: 3, Label: "Empty", Icon: "❌", IsWinning: false, ColorHint: "#2d3436"},
		{ID: 4, Label: "Pizza Margherita", Icon: "🍕", IsWinning: true, ColorHint: "#ff6b35"},
		{ID: 5, Label: "Empty", Icon: "❌", IsWinning: false, ColorHint: "#2d3436"},
		{ID: 6, Label: "Empty", Icon: "❌", IsWinning: false, ColorHint: "#2d3436"},
		{ID: 7, Label: "French Fries", Icon: "🍟", IsWinning: true, ColorHint: "#ff6b35"},
		{ID: 8, Label: "Empty", Icon: "❌", IsWinning: false, ColorHint: "#2d3436"},
		{ID: 9, Label: "Empty", Icon: "❌", IsWinning: false, ColorHint: "#2d3436"},
	}
}

// LoadSectors reads a sector table from a JSON file.
func LoadSectors(path string) ([]domain.Sector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sector file: %w", err)
	}

	var sectors []domain.Sector
	if err := json.Unmarshal(raw, &sectors); err != nil {
		return nil, fmt.Errorf("failed to parse sector file: %w", err)
	}
	if len(sectors) == 0 {
		return nil, fmt.Errorf("sector file %s: %w", path, domain.ErrEmptySectorTable)
	}

	return sectors, nil
}
