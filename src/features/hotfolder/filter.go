package hotfolder

import (
	"path/filepath"
	"strings"
)

// ExtensionFilter accepts paths whose extension is in an allow-list. An empty list accepts everything.
type ExtensionFilter struct {
	allowed map[string]struct{}
}

// NewExtensionFilter builds a filter from raw extensions such as "JPG", ".png" or "tiff".
func NewExtensionFilter(extensions []string) ExtensionFilter {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		if ext = normalizeExtension(ext); ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	return ExtensionFilter{allowed: allowed}
}

// Accept reports whether path passes the filter.
func (f ExtensionFilter) Accept(path string) bool {
	if len(f.allowed) == 0 {
		return true
	}
	ext := normalizeExtension(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, ok := f.allowed[ext]
	return ok
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
