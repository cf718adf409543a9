package watcher

import (
	"io/fs"
	"path/filepath"
)

// addTree adds a watch for every directory below root. When scheduleFiles is set,
// files found during the walk are debounced as well: they may have been written
// before the directory watch existed.
func (w *Watcher) addTree(root string, scheduleFiles bool) {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			if scheduleFiles {
				w.debouncer.schedule(path)
			}
			return nil
		}
		if path == w.root {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch subdirectory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("Failed to walk directory", "path", root, "error", err)
	}
}
