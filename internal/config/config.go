package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSheetURL points at the published spreadsheet export the tracker
// was built for; deployments override it in config or via SHEET_URL.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRWkgTtvUGGmSGfrpW-idvJ_U1jgam8F1Dy0dHfIjVDgz6LwclTSUZlHxJrJ--qQ6ND7iqEwJ_p0z4n/pub?gid=0&single=true&output=csv"

// Config holds everything the service needs. Values come from the YAML
// file, then environment variables, then baked-in defaults.
type Config struct {
	SheetURL         string `yaml:"sheet_url"`
	ListenAddr       string `yaml:"listen_addr"`
	TokenSecret      string `yaml:"token_secret"`
	TokenTTLHours    int    `yaml:"token_ttl_hours"`
	AdmissionPrefix  string `yaml:"admission_prefix"`
	MaxLoginAttempts int    `yaml:"max_login_attempts"`
	LockoutHours     int    `yaml:"lockout_hours"`
	FetchTimeoutSecs int    `yaml:"fetch_timeout_seconds"`
	DefaultPageSize  int    `yaml:"default_page_size"`
	SampleFallback   bool   `yaml:"sample_fallback"`
	SampleSize       int    `yaml:"sample_size"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		SheetURL:         DefaultSheetURL,
		ListenAddr:       ":8080",
		TokenSecret:      "change-me-in-production",
		TokenTTLHours:    24,
		AdmissionPrefix:  "KEG/PM/2324/F",
		MaxLoginAttempts: 3,
		LockoutHours:     24,
		FetchTimeoutSecs: 30,
		DefaultPageSize:  20,
		SampleFallback:   true,
		SampleSize:       70,
	}
}

// Load reads the YAML file at path (a missing file is fine — defaults
// apply), then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %q: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.SheetURL = getEnv("SHEET_URL", cfg.SheetURL)
	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.TokenSecret = getEnv("TOKEN_SECRET", cfg.TokenSecret)
	cfg.AdmissionPrefix = getEnv("ADMISSION_PREFIX", cfg.AdmissionPrefix)
	cfg.TokenTTLHours = getEnvAsInt("TOKEN_TTL_HOURS", cfg.TokenTTLHours)
	cfg.MaxLoginAttempts = getEnvAsInt("MAX_LOGIN_ATTEMPTS", cfg.MaxLoginAttempts)
	cfg.LockoutHours = getEnvAsInt("LOCKOUT_HOURS", cfg.LockoutHours)
	cfg.FetchTimeoutSecs = getEnvAsInt("FETCH_TIMEOUT_SECONDS", cfg.FetchTimeoutSecs)
	cfg.DefaultPageSize = getEnvAsInt("DEFAULT_PAGE_SIZE", cfg.DefaultPageSize)
}

func (c Config) validate() error {
	if c.SheetURL == "" {
		return fmt.Errorf("sheet_url must not be empty")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("token_ttl_hours must be positive, got %d", c.TokenTTLHours)
	}
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("max_login_attempts must be positive, got %d", c.MaxLoginAttempts)
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be positive, got %d", c.DefaultPageSize)
	}
	return nil
}

// TokenTTL is the session token validity window.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// LockoutWindow is how long a lockout lasts after repeated failures.
func (c Config) LockoutWindow() time.Duration {
	return time.Duration(c.LockoutHours) * time.Hour
}

// FetchTimeout bounds one sheet download.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
