package images

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DirectoryPicker implements Service over a watched directory: the
// platform drops captured files there and picks return them processed.
// It keeps the core testable without a camera.
type DirectoryPicker struct {
	source    string
	processor *Processor
}

// NewDirectoryPicker creates a picker reading from source.
func NewDirectoryPicker(source string, processor *Processor) *DirectoryPicker {
	return &DirectoryPicker{source: source, processor: processor}
}

// PickImages processes every image currently in the source directory.
func (d *DirectoryPicker) PickImages(cfg Config) ([]string, error) {
	entries, err := os.ReadDir(d.source)
	if err != nil {
		return nil, fmt.Errorf("read picker source: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		processed, err := d.processor.Process(filepath.Join(d.source, name), cfg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, processed)
	}
	return paths, nil
}

// TakePhoto processes the most recent image in the source directory,
// or returns empty when there is none (capture dismissed).
func (d *DirectoryPicker) TakePhoto(cfg Config) (string, error) {
	paths, err := d.PickImages(cfg)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", nil
	}
	return paths[len(paths)-1], nil
}

// DeleteImage removes a processed image.
func (d *DirectoryPicker) DeleteImage(path string) error {
	return d.processor.DeleteImage(path)
}
