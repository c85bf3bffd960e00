package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	DBMaxConns   int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret    string   `mapstructure:"JWT_SECRET"`
	TokenTTL     string   `mapstructure:"TOKEN_TTL"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	WorkDayStart string   `mapstructure:"WORK_DAY_START"`
	WorkDayEnd   string   `mapstructure:"WORK_DAY_END"`
	SlotMinutes  int      `mapstructure:"SLOT_MINUTES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("WORK_DAY_START", "09:00")
	v.SetDefault("WORK_DAY_END", "17:00")
	v.SetDefault("SLOT_MINUTES", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("WORK_DAY_START")
	v.BindEnv("WORK_DAY_END")
	v.BindEnv("SLOT_MINUTES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// TokenLifetime parses TOKEN_TTL, falling back to 24h on malformed input.
func (c *Config) TokenLifetime() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// WorkingHours returns the working-day window as offsets from midnight.
// Malformed values fall back to the 09:00-17:00 default.
func (c *Config) WorkingHours() (start, end time.Duration) {
	start = parseClock(c.WorkDayStart, 9*time.Hour)
	end = parseClock(c.WorkDayEnd, 17*time.Hour)
	if end <= start {
		return 9 * time.Hour, 17 * time.Hour
	}
	return start, end
}

// SlotLength returns the slot granularity used by the availability endpoint.
func (c *Config) SlotLength() time.Duration {
	if c.SlotMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SlotMinutes) * time.Minute
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT_SECRET must be set so issued tokens cannot be forged.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q. "+
			"Refusing to start without a token signing key", c.Env)
	}
	return nil
}

func parseClock(s string, fallback time.Duration) time.Duration {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return fallback
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}
