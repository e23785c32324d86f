package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	xdgAppName = "taskaudit"
	configFile = "config.json"

	// DefaultPort is used when neither the config file nor PORT set one.
	DefaultPort = 3000
)

// Config holds everything the service needs at startup. The API token and
// key come from the environment only; timezone and port may also be set in
// the config file.
type Config struct {
	Timezone string `json:"timezone,omitempty"`
	Port     int    `json:"port,omitempty"`

	APIToken string `json:"-"`
	APIKey   string `json:"-"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// loadFile reads the config file, returning defaults when it is absent.
func loadFile() (*Config, error) {
	cfg := &Config{Port: DefaultPort}

	path, err := GetConfigPath()
	if err != nil {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return cfg, nil
}

// Save persists the file-backed settings (timezone, port).
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Load resolves configuration from the config file, a .env file and the
// environment, in increasing order of precedence. The API token is
// required; everything else has a default.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TIME_ZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	cfg.APIToken = os.Getenv("TODOIST_SECRET_ID")
	cfg.APIKey = os.Getenv("API_KEY")

	if cfg.APIToken == "" {
		return nil, errors.New("TODOIST_SECRET_ID not found in environment variables")
	}
	return cfg, nil
}
