// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Named environments and their API base URLs.
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

var environments = map[string]string{
	EnvLocal:      "http://0.0.0.0:3001",
	EnvProduction: "https://studant-depression-api.com",
}

// DefaultAPIURL is used when neither TERAPP_API_URL nor TERAPP_ENV is set.
const DefaultAPIURL = "http://localhost:3001"

// Config holds the application settings.
type Config struct {
	// APIURL is the base URL of the survey/prediction API.
	APIURL string

	// Env is the named environment the base URL was taken from, if any.
	Env string

	// DBPath overrides the history database location. Empty means the
	// store package default.
	DBPath string

	// DebugLog is a file path that receives debug output while the TUI
	// owns the terminal. Empty disables it.
	DebugLog string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{APIURL: DefaultAPIURL}
}

// LoadDotEnv loads the given .env files (".env" when none are given) into
// the process environment. Missing files are ignored; variables already set
// in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if e := strings.ToLower(strings.TrimSpace(os.Getenv("TERAPP_ENV"))); e != "" {
		cfg.Env = e
		if u, ok := environments[e]; ok {
			cfg.APIURL = u
		}
	}
	if u := os.Getenv("TERAPP_API_URL"); u != "" {
		cfg.APIURL = u
	}
	if p := os.Getenv("TERAPP_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("TERAPP_DEBUG_LOG"); p != "" {
		cfg.DebugLog = p
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Env != "" {
		if _, ok := environments[c.Env]; !ok {
			return fmt.Errorf("unknown TERAPP_ENV %q (want %q or %q)", c.Env, EnvLocal, EnvProduction)
		}
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.APIURL)
	}
	return nil
}
