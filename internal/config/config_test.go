package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "sekret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 100, cfg.SpinPrice)
	assert.Equal(t, 4500*time.Millisecond, cfg.SpinDuration)
	assert.False(t, cfg.FreePlay())
	assert.False(t, cfg.UseDatabase())
	assert.Len(t, cfg.Sectors, 9)
}

func TestLoadRequiresAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadRejectsNegativeSpinPrice(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "sekret")
	t.Setenv("SPIN_PRICE", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestFreePlayMode(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "sekret")
	t.Setenv("SPIN_PRICE", "0")
	t.Setenv("FREE_SPIN_GRANT", "999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.FreePlay())
	assert.Equal(t, 999, cfg.FreeSpinGrant)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "wheel"}
	assert.Equal(t, "postgres://u:p@db:5432/wheel?sslmode=disable", cfg.GetDBConnString())
	assert.True(t, cfg.UseDatabase())
}

func TestLoadSectorsFromFile(t *testing.T) {
	sectors := []domain.Sector{
		{ID: 1, Label: "Shawarma", Icon: "🌯", IsWinning: true},
		{ID: 2, Label: "Empty", Icon: "❌", IsWinning: false},
	}
	raw, err := json.Marshal(sectors)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sectors.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := LoadSectors(path)
	require.NoError(t, err)
	assert.Equal(t, sectors, loaded)
}

func TestLoadSectorsRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sectors.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	_, err := LoadSectors(path)
	assert.ErrorIs(t, err, domain.ErrEmptySectorTable)
}

func TestApplyOverrideMergesShallowly(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	price := 200
	address := "2 New St"
	blob, err := json.Marshal(Override{SpinPrice: &price, VenueAddress: &address})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, storage.KeyConfigOverride, blob))

	cfg := &Config{SpinPrice: 100, VenueAddress: "old", AdminPassword: "keep", ContactPhone: "keep-phone"}
	ApplyOverride(ctx, cfg, store)

	assert.Equal(t, 200, cfg.SpinPrice)
	assert.Equal(t, "2 New St", cfg.VenueAddress)
	// Untouched keys keep their defaults.
	assert.Equal(t, "keep", cfg.AdminPassword)
	assert.Equal(t, "keep-phone", cfg.ContactPhone)
}

func TestApplyOverrideIgnoresMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	cfg := &Config{SpinPrice: 100}

	ApplyOverride(ctx, cfg, store)
	assert.Equal(t, 100, cfg.SpinPrice)

	require.NoError(t, store.Set(ctx, storage.KeyConfigOverride, []byte("{broken")))
	ApplyOverride(ctx, cfg, store)
	assert.Equal(t, 100, cfg.SpinPrice)
}

func TestDefaultSectorsShape(t *testing.T) {
	sectors := DefaultSectors()
	assert.Len(t, sectors, 9)

	winning := 0
	for _, s := range sectors {
		if s.IsWinning {
			winning++
		}
	}
	assert.Equal(t, 3, winning)
}
