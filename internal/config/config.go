package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dsolodov/foodwheel/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port     int
	LogLevel string

	// Database; empty DBHost means run on the in-memory store.
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Game
	SpinPrice     int           // minor units per spin; 0 enables free play
	FreeSpinGrant int           // free spins granted to a fresh user (free-play mode)
	SpinDuration  time.Duration // animation duration; settle fires after it
	SectorFile    string        // optional JSON file overriding the default wheel
	Sectors       []domain.Sector

	// Venue presentation
	VenueAddress string
	ContactPhone string

	// Admin gate. A single shared secret compared in-process: plaintext and
	// readable by anyone who can read the config. The admin boundary of this
	// game is trust, not cryptography.
	AdminPassword string

	Payment PaymentRequisites
}

// PaymentRequisites is the presentation data the rendering layer shows for
// each payment method. Purely informational; nothing here settles money.
type PaymentRequisites struct {
	SBPPhone      string `json:"sbp_phone"`
	SBPRecipient  string `json:"sbp_recipient"`
	SBPBank       string `json:"sbp_bank"`
	CardNumber    string `json:"card_number"`
	CardRecipient string `json:"card_recipient"`
	TransferPhone string `json:"transfer_phone"`
	AdminContact  string `json:"admin_contact"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", ""),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "foodwheel"),
		SectorFile:    getEnv("SECTOR_FILE", ""),
		VenueAddress:  getEnv("VENUE_ADDRESS", "1 Example St, open daily 10:00-22:00"),
		ContactPhone:  getEnv("CONTACT_PHONE", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		Payment: PaymentRequisites{
			SBPPhone:      getEnv("PAYMENT_SBP_PHONE", ""),
			SBPRecipient:  getEnv("PAYMENT_SBP_RECIPIENT", ""),
			SBPBank:       getEnv("PAYMENT_SBP_BANK", ""),
			CardNumber:    getEnv("PAYMENT_CARD_NUMBER", ""),
			CardRecipient: getEnv("PAYMENT_CARD_RECIPIENT", ""),
			TransferPhone: getEnv("PAYMENT_TRANSFER_PHONE", ""),
			AdminContact:  getEnv("PAYMENT_ADMIN_CONTACT", ""),
		},
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.SpinPrice, err = getEnvInt("SPIN_PRICE", 100)
	if err != nil {
		return nil, err
	}
	if cfg.SpinPrice < 0 {
		return nil, fmt.Errorf("SPIN_PRICE must not be negative, got %d", cfg.SpinPrice)
	}

	cfg.FreeSpinGrant, err = getEnvInt("FREE_SPIN_GRANT", 0)
	if err != nil {
		return nil, err
	}

	durationMs, err := getEnvInt("SPIN_DURATION_MS", 4500)
	if err != nil {
		return nil, err
	}
	cfg.SpinDuration = time.Duration(durationMs) * time.Millisecond

	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD environment variable must be set")
	}

	cfg.Sectors = DefaultSectors()
	if cfg.SectorFile != "" {
		sectors, err := LoadSectors(cfg.SectorFile)
		if err != nil {
			return nil, err
		}
		cfg.Sectors = sectors
	}

	return cfg, nil
}

// FreePlay reports whether spins cost nothing. The original test/demo mode
// is this configuration variant, not a separate code path.
func (c *Config) FreePlay() bool {
	return c.SpinPrice == 0
}

// UseDatabase reports whether a PostgreSQL store is configured.
func (c *Config) UseDatabase() bool {
	return c.DBHost != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}
