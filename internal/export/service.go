// Package export renders task and infrastructure sequences into
// shareable Excel and PDF documents. The caller supplies sequences
// that are already filtered and sorted; this layer only formats them.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"terralot/internal/model"
)

// Format selects the output document type.
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ShareFunc hands a finished file to the platform share sheet.
type ShareFunc func(path string, format Format) error

// Service writes export documents into a dedicated directory.
type Service struct {
	dir   string
	log   *zap.Logger
	share ShareFunc
}

// NewService creates the export service. The directory is created on
// first use.
func NewService(dir string, log *zap.Logger, share ShareFunc) *Service {
	return &Service{dir: dir, log: log, share: share}
}

// ExportTasks renders tasks into a document and returns its path. When
// a share hook is configured the file is handed off after writing.
func (s *Service) ExportTasks(tasks []model.Task, format Format, filename string) (string, error) {
	path, err := s.target(filename, "tasks", format)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatExcel:
		err = writeTaskWorkbook(tasks, path)
	case FormatPDF:
		err = writeTaskPDF(tasks, path)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("export tasks: %w", err)
	}
	return s.finish(path, format, len(tasks))
}

// ExportInfrastructure renders infrastructure records for the
// maintenance report.
func (s *Service) ExportInfrastructure(items []model.Infrastructure, format Format, filename string) (string, error) {
	path, err := s.target(filename, "infrastructure", format)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatExcel:
		err = writeInfrastructureWorkbook(items, path)
	case FormatPDF:
		err = writeInfrastructurePDF(items, path)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("export infrastructure: %w", err)
	}
	return s.finish(path, format, len(items))
}

// Cleanup removes every previously exported document.
func (s *Service) Cleanup() error {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cleanup exports: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("cleanup exports: %w", err)
		}
	}
	return nil
}

func (s *Service) target(filename, fallback string, format Format) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	if filename == "" {
		filename = fmt.Sprintf("%s-%s", fallback, time.Now().Format("20060102-150405"))
	}
	ext := ".xlsx"
	if format == FormatPDF {
		ext = ".pdf"
	}
	if !strings.HasSuffix(filename, ext) {
		filename += ext
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *Service) finish(path string, format Format, count int) (string, error) {
	s.log.Info("export written",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", count))
	if s.share != nil {
		if err := s.share(path, format); err != nil {
			return "", fmt.Errorf("share export: %w", err)
		}
	}
	return path, nil
}
