// Package config loads the ledger configuration from the environment and optional .env
// files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/ourfinance/internal/models"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

// Config holds all the configuration variables of the server and the CLI.
type Config struct {
	// StoreBackend is sqlite, sheets or memory.
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DBPath       string `mapstructure:"DB_PATH"`

	GoogleSheetID             string  `mapstructure:"GOOGLE_SHEET_ID"`
	GoogleServiceAccountEmail string  `mapstructure:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey          string  `mapstructure:"GOOGLE_PRIVATE_KEY"`
	SheetsRequestsPerSecond   float64 `mapstructure:"SHEETS_REQUESTS_PER_SECOND"`

	ServerPort         string `mapstructure:"SERVER_PORT"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	LogFormat          string `mapstructure:"LOG_FORMAT"`

	// JWTSecret enables login. Without it the API is unauthenticated.
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	UserAPasswordHash string        `mapstructure:"USER_A_PASSWORD_HASH"`
	UserBPasswordHash string        `mapstructure:"USER_B_PASSWORD_HASH"`

	SharedAdjustmentOwner string `mapstructure:"SHARED_ADJUSTMENT_OWNER"`
	LedgerTimezone        string `mapstructure:"LEDGER_TIMEZONE"`
	LedgerCurrency        string `mapstructure:"LEDGER_CURRENCY"`
}

var defaults = map[string]any{
	"STORE_BACKEND":                BackendSQLite,
	"DB_PATH":                      "./data/ledger.db",
	"GOOGLE_SHEET_ID":              "",
	"GOOGLE_SERVICE_ACCOUNT_EMAIL": "",
	"GOOGLE_PRIVATE_KEY":           "",
	"SHEETS_REQUESTS_PER_SECOND":   1.0,
	"SERVER_PORT":                  "8080",
	"CORS_ALLOWED_ORIGINS":         "*",
	"LOG_LEVEL":                    "info",
	"LOG_FORMAT":                   "text",
	"JWT_SECRET":                   "",
	"TOKEN_TTL":                    "24h",
	"USER_A_PASSWORD_HASH":         "",
	"USER_B_PASSWORD_HASH":         "",
	"SHARED_ADJUSTMENT_OWNER":      string(models.OwnerA),
	"LEDGER_TIMEZONE":              "Local",
	"LEDGER_CURRENCY":              "INR",
}

// Load reads the given .env files (missing files are skipped), then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
		slog.Debug("Loaded env file", "path", f)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Keys pasted from a service account JSON file keep their escaped newlines.
	cfg.GooglePrivateKey = strings.ReplaceAll(cfg.GooglePrivateKey, `\n`, "\n")
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendSheets, BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: must be sqlite, sheets or memory", c.StoreBackend)
	}
	if !models.Owner(c.SharedAdjustmentOwner).IsUser() {
		return fmt.Errorf("invalid SHARED_ADJUSTMENT_OWNER %q: must be A or B", c.SharedAdjustmentOwner)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL %s: must be positive", c.TokenTTL)
	}
	return nil
}

// Location is the time zone monthly reports are cut in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.LedgerTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE %q: %w", c.LedgerTimezone, err)
	}
	return loc, nil
}

// SharedOwner is the user adjustments of Shared accounts are attributed to.
func (c *Config) SharedOwner() models.Owner {
	return models.Owner(c.SharedAdjustmentOwner)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// PasswordHashes maps each user to the configured bcrypt hash. Users without a hash
// cannot log in.
func (c *Config) PasswordHashes() map[models.Owner]string {
	hashes := make(map[models.Owner]string)
	if c.UserAPasswordHash != "" {
		hashes[models.OwnerA] = c.UserAPasswordHash
	}
	if c.UserBPasswordHash != "" {
		hashes[models.OwnerB] = c.UserBPasswordHash
	}
	return hashes
}

// AuthEnabled reports whether the API requires a session token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
