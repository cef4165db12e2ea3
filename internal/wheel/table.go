// Package wheel holds the sector geometry and the two pure mechanics of a
// spin: the uniform outcome draw and the rotation plan the animator follows.
package wheel

import (
	"github.com/dsolodov/foodwheel/internal/domain"
)

// SectorTable is the ordered sequence of wheel sectors. Index order defines
// angular position: sector i starts at i * 360/N degrees, laid out clockwise.
// Immutable once built.
type SectorTable struct {
	sectors []domain.Sector
}

// NewTable builds a table from config sectors.
func NewTable(sectors []domain.Sector) (*SectorTable, error) {
	if len(sectors) == 0 {
		return nil, domain.ErrEmptySectorTable
	}

	owned := make([]domain.Sector, len(sectors))
	copy(owned, sectors)
	return &SectorTable{sectors: owned}, nil
}

// Len returns the sector count.
func (t *SectorTable) Len() int {
	return len(t.sectors)
}

// Sector returns the sector at index i.
func (t *SectorTable) Sector(i int) domain.Sector {
	return t.sectors[i]
}

// Sectors returns a copy of the full ordered sector list.
func (t *SectorTable) Sectors() []domain.Sector {
	out := make([]domain.Sector, len(t.sectors))
	copy(out, t.sectors)
	return out
}

// AnglePerSector returns the angular width of one sector in degrees.
func (t *SectorTable) AnglePerSector() float64 {
	return 360.0 / float64(len(t.sectors))
}

// WinningCount returns how many sectors carry a prize. The win probability
// of a single spin is WinningCount()/Len().
func (t *SectorTable) WinningCount() int {
	count := 0
	for _, s := range t.sectors {
		if s.IsWinning {
			count++
		}
	}
	return count
}
