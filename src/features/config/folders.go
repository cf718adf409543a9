package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/gosimple/unidecode"
)

// DeriveFolderID builds an ASCII slug from the last element of path,
// e.g. "/srv/Fotos Año 2024" becomes "fotos-ano-2024".
func DeriveFolderID(path string) string {
	name := unidecode.Unidecode(filepath.Base(filepath.Clean(path)))
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "folder"
	}
	return slug
}

// assignFolderIDs gives every declared folder without an id a unique derived one.
func assignFolderIDs(folders []hotfolder.FolderConfig) {
	taken := make(map[string]bool, len(folders))
	for _, folder := range folders {
		if id := strings.TrimSpace(folder.ID); id != "" {
			taken[id] = true
		}
	}
	for i := range folders {
		if strings.TrimSpace(folders[i].ID) != "" {
			continue
		}
		base := DeriveFolderID(folders[i].Path)
		id := base
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		taken[id] = true
		folders[i].ID = id
	}
}
