package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new ConfigManager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		if err := saveDefaultConfig(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		slog.Info("Default configuration created successfully", "path", path)
		applyEnv(defaultCfg)
		return NewManager(defaultCfg), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	assignFolderIDs(cfg.HotFolders)
	for i := range cfg.HotFolders {
		cfg.HotFolders[i] = cfg.HotFolders[i].Normalized()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return NewManager(&cfg), nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Engine.Transport == "http" && cfg.Engine.URL == "" {
		return fmt.Errorf("config validation failed: engine.url is required for the http transport")
	}
	if cfg.Telegram.Enabled && cfg.Telegram.Token == "" {
		return fmt.Errorf("config validation failed: telegram.token is required when telegram is enabled")
	}
	seen := make(map[string]bool, len(cfg.HotFolders))
	for _, folder := range cfg.HotFolders {
		if seen[folder.ID] {
			return fmt.Errorf("config validation failed: duplicate hot folder id %q", folder.ID)
		}
		seen[folder.ID] = true
	}
	return nil
}

// applyEnv overrides values with environment variables if set.
func applyEnv(cfg *Config) {
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if url := os.Getenv("HOTFOLDER_ENGINE_URL"); url != "" {
		cfg.Engine.URL = url
	}
	if password := os.Getenv("HOTFOLDER_REDIS_PASSWORD"); password != "" {
		cfg.Engine.Redis.Password = password
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
