package config

import "github.com/contre95/hotfolder/src/features/hotfolder"

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level:  "info",
			Format: "text",
		},
		Server: Server{
			PrintRoutes: false,
			Port:        3535,
			Views:       "./views",
		},
		Engine: Engine{
			Transport: "http",
			URL:       "http://localhost:8888",
			TimeoutMs: 10000,
			Redis: Redis{
				Addr:   "localhost:6379",
				Stream: "hotfolder:ingest",
			},
		},
		Telegram: Telegram{
			Enabled:      false,
			Token:        "", // Can be obtained with https://t.me/BotFather
			AllowedUsers: []string{},
			ChatIDs:      []int64{},
		},
		Watch: Watch{
			DuplicatePolicy:         "replace",
			DefaultStabilityTimeout: 2000,
			EventBuffer:             64,
		},
		HotFolders: []hotfolder.FolderConfig{},
		LockPath:   "./hotfolder.lock",
	}
}

// applyDefaults fills zero values left out of a partial config file.
func applyDefaults(cfg *Config) {
	def := createDefaultConfig()
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = def.Logger.Level
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = def.Logger.Format
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.Views == "" {
		cfg.Server.Views = def.Server.Views
	}
	if cfg.Engine.Transport == "" {
		cfg.Engine.Transport = def.Engine.Transport
	}
	if cfg.Engine.URL == "" && cfg.Engine.Transport == "http" {
		cfg.Engine.URL = def.Engine.URL
	}
	if cfg.Engine.TimeoutMs == 0 {
		cfg.Engine.TimeoutMs = def.Engine.TimeoutMs
	}
	if cfg.Engine.Redis.Addr == "" {
		cfg.Engine.Redis.Addr = def.Engine.Redis.Addr
	}
	if cfg.Engine.Redis.Stream == "" {
		cfg.Engine.Redis.Stream = def.Engine.Redis.Stream
	}
	if cfg.Watch.DuplicatePolicy == "" {
		cfg.Watch.DuplicatePolicy = def.Watch.DuplicatePolicy
	}
	if cfg.Watch.DefaultStabilityTimeout == 0 {
		cfg.Watch.DefaultStabilityTimeout = def.Watch.DefaultStabilityTimeout
	}
	if cfg.Watch.EventBuffer == 0 {
		cfg.Watch.EventBuffer = def.Watch.EventBuffer
	}
	if cfg.LockPath == "" {
		cfg.LockPath = def.LockPath
	}
}
