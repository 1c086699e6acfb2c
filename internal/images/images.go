// Package images defines the image capture/pick collaborator interface
// and a filesystem-backed processor for the options every form passes
// through it.
package images

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config carries the processing options a form requests.
type Config struct {
	MaxWidth  int `json:"maxWidth"`
	MaxHeight int `json:"maxHeight"`
	Quality   int `json:"quality"`  // jpeg quality 1-100
	Rotation  int `json:"rotation"` // degrees, multiples of 90
}

// Service is the platform capture/pick collaborator. The core never
// implements the camera itself; it consumes paths this service yields.
type Service interface {
	PickImages(cfg Config) ([]string, error)
	TakePhoto(cfg Config) (string, error)
	DeleteImage(path string) error
}

// Processor normalizes picked images into the app's image directory,
// honoring the requested bounds, rotation and quality.
type Processor struct {
	dir string
	log *zap.Logger
}

// NewProcessor creates a processor writing into dir.
func NewProcessor(dir string, log *zap.Logger) *Processor {
	return &Processor{dir: dir, log: log}
}

// Process decodes a source image, applies rotation and size bounds and
// stores the result as a JPEG, returning the new path.
func (p *Processor) Process(srcPath string, cfg Config) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("decode image %s: %w", srcPath, err)
	}

	switch ((cfg.Rotation % 360) + 360) % 360 {
	case 90:
		img = imaging.Rotate90(img)
	case 180:
		img = imaging.Rotate180(img)
	case 270:
		img = imaging.Rotate270(img)
	}

	if cfg.MaxWidth > 0 || cfg.MaxHeight > 0 {
		w, h := cfg.MaxWidth, cfg.MaxHeight
		if w == 0 {
			w = img.Bounds().Dx()
		}
		if h == 0 {
			h = img.Bounds().Dy()
		}
		img = imaging.Fit(img, w, h, imaging.Lanczos)
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}
	quality := cfg.Quality
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	dst := filepath.Join(p.dir, uuid.NewString()+".jpg")
	if err := imaging.Save(img, dst, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("save image %s: %w", dst, err)
	}
	p.log.Debug("image processed",
		zap.String("src", srcPath),
		zap.String("dst", dst),
		zap.Int("quality", quality))
	return dst, nil
}

// DeleteImage removes a stored image. Deleting an absent file is a
// no-op, mirroring the store's idempotent delete.
func (p *Processor) DeleteImage(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
