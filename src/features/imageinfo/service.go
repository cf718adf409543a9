package imageinfo

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedFormat is returned for files no registered decoder recognizes.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrOutsideHotFolders is returned when the path is not under any watched folder.
	ErrOutsideHotFolders = errors.New("path is outside every hot folder")
)

// Info describes an image file without decoding its pixels.
type Info struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}

// FolderLister returns the configured hot folders.
type FolderLister interface {
	GetConfigs() []hotfolder.FolderConfig
}

// Service probes image files.
type Service struct {
	folders FolderLister
}

// NewService creates a Service. With a nil lister any readable path may be probed.
func NewService(folders FolderLister) *Service {
	return &Service{folders: folders}
}

// Probe reads the image header at path.
func (s *Service) Probe(path string) (Info, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if s.folders != nil && !s.insideHotFolder(path) {
		return Info{}, fmt.Errorf("%w: %s", ErrOutsideHotFolders, path)
	}
	return Probe(path)
}

func (s *Service) insideHotFolder(path string) bool {
	for _, folder := range s.folders.GetConfigs() {
		rel, err := filepath.Rel(filepath.Clean(folder.Path), path)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Probe decodes the header of the image at path.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Info{}, err
	}
	if stat.IsDir() {
		return Info{}, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return Info{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return Info{
		Path:      path,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: stat.Size(),
	}, nil
}
