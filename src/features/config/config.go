package config

import (
	"time"

	"github.com/contre95/hotfolder/src/features/hotfolder"
)

// Config holds the application configuration.
type Config struct {
	Logger     Logger                   `yaml:"logger"`
	Server     Server                   `yaml:"server"`
	Engine     Engine                   `yaml:"engine"`
	Telegram   Telegram                 `yaml:"telegram"`
	Watch      Watch                    `yaml:"watch"`
	HotFolders []hotfolder.FolderConfig `yaml:"hot_folders" validate:"dive"`
	LockPath   string                   `yaml:"lock_path" validate:"required"`
	Demo       bool                     `yaml:"demo"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required"`
	Views       string `yaml:"views"`
}

// Engine selects and configures the Processing Engine transport.
type Engine struct {
	Transport string `yaml:"transport" validate:"oneof=http redis local"`
	URL       string `yaml:"url" validate:"omitempty,url"`
	TimeoutMs int    `yaml:"timeout_ms" validate:"gte=0"`
	Redis     Redis  `yaml:"redis"`
}

// Timeout returns the per-request timeout.
func (e Engine) Timeout() time.Duration {
	return time.Duration(e.TimeoutMs) * time.Millisecond
}

// Redis holds the stream transport settings.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
	Stream   string `yaml:"stream"`
	MaxLen   int64  `yaml:"max_len"`
}

// Telegram configures the bot used for commands and event notifications.
type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token"`
	AllowedUsers []string `yaml:"allowed_users"`
	ChatIDs      []int64  `yaml:"chat_ids"`
	Notify       bool     `yaml:"notify"`
}

// Watch holds registry-wide watch policy.
type Watch struct {
	DuplicatePolicy string `yaml:"duplicate_policy" validate:"omitempty,oneof=replace reject"`
	// DefaultStabilityTimeout in milliseconds, used when a folder sets 0.
	DefaultStabilityTimeout uint64 `yaml:"default_stability_timeout"`
	EventBuffer             int    `yaml:"event_buffer" validate:"gte=0"`
}

// DefaultStability returns the fallback stability timeout.
func (w Watch) DefaultStability() time.Duration {
	return time.Duration(w.DefaultStabilityTimeout) * time.Millisecond
}
