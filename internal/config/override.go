package config

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/storage"
)

// Override is the persisted config blob the admin tooling may write. Fields
// are pointers so that only the keys present in the blob replace defaults:
// the merge is shallow, one whole field at a time.
type Override struct {
	SpinPrice     *int               `json:"spin_price,omitempty"`
	VenueAddress  *string            `json:"venue_address,omitempty"`
	ContactPhone  *string            `json:"contact_phone,omitempty"`
	AdminPassword *string            `json:"admin_password,omitempty"`
	Sectors       []domain.Sector    `json:"sectors,omitempty"`
	Payment       *PaymentRequisites `json:"payment,omitempty"`
}

// ApplyOverride loads the override blob from the store and merges it over
// cfg. A missing blob is the normal case; a malformed one is logged and
// ignored so a bad admin write can never brick startup.
func ApplyOverride(ctx context.Context, cfg *Config, store storage.Store) {
	raw, err := store.Get(ctx, storage.KeyConfigOverride)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return
	}
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load config override", "error", err)
		return
	}

	var ov Override
	if err := json.Unmarshal(raw, &ov); err != nil {
		logger.FromContext(ctx).Warn("Config override blob is corrupt, ignoring", "error", err)
		return
	}

	if ov.SpinPrice != nil && *ov.SpinPrice >= 0 {
		cfg.SpinPrice = *ov.SpinPrice
	}
	if ov.VenueAddress != nil {
		cfg.VenueAddress = *ov.VenueAddress
	}
	if ov.ContactPhone != nil {
		cfg.ContactPhone = *ov.ContactPhone
	}
	if ov.AdminPassword != nil && *ov.AdminPassword != "" {
		cfg.AdminPassword = *ov.AdminPassword
	}
	if len(ov.Sectors) > 0 {
		cfg.Sectors = ov.Sectors
	}
	if ov.Payment != nil {
		cfg.Payment = *ov.Payment
	}
}
