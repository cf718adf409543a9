package hotfolder

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FolderConfig holds the identity and policy for one watched folder.
type FolderConfig struct {
	ID         string   `json:"id" yaml:"id" validate:"required,max=128"`
	Path       string   `json:"path" yaml:"path" validate:"required"`
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	Extensions []string `json:"extensions" yaml:"extensions" validate:"dive,required"`
	// StabilityTimeout is the quiet period in milliseconds before a path counts as settled.
	StabilityTimeout uint64 `json:"stability_timeout" yaml:"stability_timeout"`
}

// Validate checks the config and returns an ErrInvalidConfig wrapped error on failure.
func (c FolderConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.ID, err)
	}
	if !filepath.IsAbs(c.Path) {
		return fmt.Errorf("%w: %s: path %q is not absolute", ErrInvalidConfig, c.ID, c.Path)
	}
	return nil
}

// Normalized returns a copy with trimmed fields, an absolute path and lower-cased,
// dot-less, de-duplicated extensions. Relative paths resolve against the working directory.
func (c FolderConfig) Normalized() FolderConfig {
	out := c
	out.ID = strings.TrimSpace(c.ID)
	out.Path = strings.TrimSpace(c.Path)
	if out.Path != "" {
		if abs, err := filepath.Abs(out.Path); err == nil {
			out.Path = abs
		}
	}
	out.Extensions = make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = normalizeExtension(ext)
		if ext == "" || slices.Contains(out.Extensions, ext) {
			continue
		}
		out.Extensions = append(out.Extensions, ext)
	}
	return out
}

// Stability returns the stability timeout as a duration, falling back to def when unset.
func (c FolderConfig) Stability(def time.Duration) time.Duration {
	if c.StabilityTimeout == 0 {
		return def
	}
	return time.Duration(c.StabilityTimeout) * time.Millisecond
}

func (c FolderConfig) clone() FolderConfig {
	out := c
	out.Extensions = slices.Clone(c.Extensions)
	return out
}
