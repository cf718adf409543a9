package hotfolder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtensionFilter(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		path       string
		want       bool
	}{
		{name: "empty list accepts anything", extensions: nil, path: "/in/notes.txt", want: true},
		{name: "empty list accepts extensionless", extensions: nil, path: "/in/README", want: true},
		{name: "empty list accepts directories", extensions: []string{}, path: "/in/batch-01", want: true},
		{name: "allowed extension", extensions: []string{"jpg", "png"}, path: "/in/a.jpg", want: true},
		{name: "case insensitive path", extensions: []string{"jpg"}, path: "/in/A.JPG", want: true},
		{name: "case insensitive list", extensions: []string{"PNG"}, path: "/in/a.png", want: true},
		{name: "dotted list entry", extensions: []string{".tiff"}, path: "/in/scan.tiff", want: true},
		{name: "rejected extension", extensions: []string{"jpg", "png"}, path: "/in/a.txt", want: false},
		{name: "extensionless rejected", extensions: []string{"jpg"}, path: "/in/batch-01", want: false},
		{name: "trailing dot rejected", extensions: []string{"jpg"}, path: "/in/photo.", want: false},
		{name: "only last extension counts", extensions: []string{"jpg"}, path: "/in/photo.jpg.part", want: false},
		{name: "nested path", extensions: []string{"jpg"}, path: "/in/2024/05/photo.jpg", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewExtensionFilter(tt.extensions)
			if got := filter.Accept(tt.path); got != tt.want {
				t.Errorf("Accept(%q) with %v = %v, want %v", tt.path, tt.extensions, got, tt.want)
			}
		})
	}
}

func TestFolderConfigNormalized(t *testing.T) {
	cfg := FolderConfig{
		ID:         "  studio ",
		Path:       " /srv/in ",
		Extensions: []string{".JPG", "jpg", "", " png "},
	}
	got := cfg.Normalized()
	if got.ID != "studio" || got.Path != "/srv/in" {
		t.Errorf("expected trimmed id and path, got %q %q", got.ID, got.Path)
	}
	if len(got.Extensions) != 2 || got.Extensions[0] != "jpg" || got.Extensions[1] != "png" {
		t.Errorf("expected [jpg png], got %v", got.Extensions)
	}
	if len(cfg.Extensions) != 4 {
		t.Error("Normalized must not modify the receiver")
	}
}

func TestFolderConfigAbsolutePath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	got := FolderConfig{ID: "rel", Path: "incoming/scans/"}.Normalized()
	if want := filepath.Join(wd, "incoming", "scans"); got.Path != want {
		t.Errorf("expected %q, got %q", want, got.Path)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("expected normalized config to validate, got %v", err)
	}

	if err := (FolderConfig{ID: "rel", Path: "incoming"}).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for a relative path, got %v", err)
	}
}
