package imageinfo

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/image/bmp"
)

type staticFolders []hotfolder.FolderConfig

func (s staticFolders) GetConfigs() []hotfolder.FolderConfig { return s }

func writeImage(t *testing.T, path string, encode func(io.Writer, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 7))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "a.png")
	bmpPath := filepath.Join(dir, "b.bmp")
	writeImage(t, pngPath, png.Encode)
	writeImage(t, bmpPath, bmp.Encode)

	tests := []struct {
		path   string
		format string
	}{
		{pngPath, "png"},
		{bmpPath, "bmp"},
	}
	for _, tt := range tests {
		info, err := Probe(tt.path)
		if err != nil {
			t.Fatalf("Probe(%s): %v", tt.path, err)
		}
		if info.Width != 12 || info.Height != 7 || info.Format != tt.format {
			t.Errorf("Probe(%s) = %+v", tt.path, info)
		}
		if info.SizeBytes <= 0 {
			t.Errorf("Probe(%s) size = %d", tt.path, info.SizeBytes)
		}
	}
}

func TestProbeErrors(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Probe(text); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Probe(filepath.Join(dir, "missing.png")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := Probe(dir); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected directory to be rejected, got %v", err)
	}
}

func TestServiceRestrictsToHotFolders(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "in")
	if err := os.Mkdir(inside, 0o755); err != nil {
		t.Fatal(err)
	}
	img := filepath.Join(inside, "a.png")
	writeImage(t, img, png.Encode)
	outside := filepath.Join(root, "out.png")
	writeImage(t, outside, png.Encode)

	service := NewService(staticFolders{{ID: "in", Path: inside}})
	if _, err := service.Probe(img); err != nil {
		t.Fatalf("probe inside: %v", err)
	}
	if _, err := service.Probe(outside); !errors.Is(err, ErrOutsideHotFolders) {
		t.Fatalf("expected ErrOutsideHotFolders, got %v", err)
	}
	if _, err := service.Probe(filepath.Join(inside, "..", "out.png")); !errors.Is(err, ErrOutsideHotFolders) {
		t.Fatalf("expected traversal to be rejected, got %v", err)
	}
}

func TestGetInfoRoute(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	writeImage(t, img, png.Encode)

	app := fiber.New()
	RegisterRoutes(app, NewService(staticFolders{{ID: "d", Path: dir}}))

	tests := []struct {
		body string
		want int
	}{
		{`{"path":"` + img + `"}`, http.StatusOK},
		{`{"path":"` + filepath.Join(dir, "nope.png") + `"}`, http.StatusNotFound},
		{`{"path":"/etc/hostname"}`, http.StatusForbidden},
		{`{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/image/info", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("POST %s: %v", tt.body, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("POST %s: expected %d, got %d", tt.body, tt.want, resp.StatusCode)
		}
	}
}
